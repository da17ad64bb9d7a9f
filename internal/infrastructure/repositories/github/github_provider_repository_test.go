//go:build unit

package github_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	logger "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
	githubRepo "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/github"
)

func newTestProvider(t *testing.T, mux *http.ServeMux) repositories.ProviderRepository {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	provider, err := githubRepo.NewGitHubProviderRepository(repositories.ProviderOptions{
		BaseURL:    server.URL + "/api/v3",
		Token:      "ghp_test",
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return provider
}

func widgetRef() entities.RepositoryRef {
	return entities.RepositoryRef{
		Provider:   entities.ProviderGitHub,
		Owner:      "acme",
		Identifier: "widget",
		Branch:     "main",
	}
}

func TestGitHubProviderRepository(t *testing.T) {
	t.Parallel()

	t.Run("should return the provider name", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newTestProvider(t, http.NewServeMux())

		// when
		name := provider.Name()

		// then
		assert.Equal(t, "github", name)
	})

	t.Run("should list commits of the branch with the token", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widget/commits", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "main", r.URL.Query().Get("sha"))
			assert.Equal(t, "2", r.URL.Query().Get("per_page"))
			assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
			fmt.Fprint(w, `[
				{"sha":"aaa1112223334445556667778889990001112223","author":{"login":"jdoe"},
				 "commit":{"message":"Fix bug\n\nDetails","author":{"name":"J. Doe","email":"j@doe.dev","date":"2024-02-01T10:00:00Z"}}},
				{"sha":"bbb2223334445556667778889990001112223334",
				 "commit":{"message":"Add feature","author":{"name":"","email":"","date":"2024-01-31T10:00:00Z"}},
				 "author":{"login":"octocat"}}
			]`)
		})
		provider := newTestProvider(t, mux)

		// when
		commits, err := provider.ListCommits(context.Background(), widgetRef(), 2)

		// then
		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, "aaa1112", commits[0].ShortSHA)
		assert.Equal(t, "Fix bug", commits[0].Title())
		assert.Equal(t, "J. Doe", commits[0].AuthorName)
		assert.Equal(t, "j@doe.dev", commits[0].AuthorEmail)
		assert.Equal(t, 2024, commits[0].Date.Year())
		assert.Equal(t, "octocat", commits[1].AuthorName)
	})

	t.Run("should map commit files", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widget/commits/aaa111", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"sha":"aaa111","files":[
				{"filename":"a.py","status":"modified","additions":5,"deletions":1,"patch":"@@ -1 +1 @@"},
				{"filename":"new.py","previous_filename":"old.py","status":"renamed","additions":0,"deletions":0}
			]}`)
		})
		provider := newTestProvider(t, mux)

		// when
		files, err := provider.GetCommitDetail(context.Background(), widgetRef(), "aaa111")

		// then
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, entities.FileChange{
			Path: "a.py", Status: entities.FileModified, Additions: 5, Deletions: 1, Patch: "@@ -1 +1 @@",
		}, files[0])
		assert.Equal(t, entities.FileRenamed, files[1].Status)
		assert.Equal(t, "old.py", files[1].PreviousPath)
	})

	t.Run("should keep only merged pull requests newest merge first", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widget/pulls", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "closed", r.URL.Query().Get("state"))
			assert.Equal(t, "main", r.URL.Query().Get("base"))
			fmt.Fprint(w, `[
				{"number":40,"title":"Old","merged_at":"2024-01-01T00:00:00Z","user":{"login":"a"}},
				{"number":41,"title":"Closed without merge","merged_at":null},
				{"number":42,"title":"Add OAuth","body":"Adds login","merged_at":"2024-02-02T00:00:00Z","user":{"login":"b"}}
			]`)
		})
		provider := newTestProvider(t, mux)

		// when
		pulls, err := provider.ListMergedChangeRequests(context.Background(), widgetRef(), 1)

		// then
		require.NoError(t, err)
		require.Len(t, pulls, 1)
		assert.Equal(t, 42, pulls[0].ID)
		assert.Equal(t, "#42", pulls[0].Reference())
		assert.Equal(t, "b", pulls[0].Author)
		assert.Equal(t, "Adds login", pulls[0].Description)
	})

	t.Run("should list pull request files", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widget/pulls/42/files", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[{"filename":"auth.py","status":"added","additions":20,"deletions":0}]`)
		})
		provider := newTestProvider(t, mux)

		// when
		files, err := provider.GetChangeRequestFiles(context.Background(), widgetRef(), 42)

		// then
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "auth.py", files[0].Path)
		assert.Equal(t, entities.FileAdded, files[0].Status)
		assert.Equal(t, 20, files[0].Additions)
	})

	t.Run("should return the default branch", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widget", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"name":"widget","default_branch":"trunk"}`)
		})
		provider := newTestProvider(t, mux)

		// when
		branch, err := provider.DefaultBranch(context.Background(), widgetRef())

		// then
		require.NoError(t, err)
		assert.Equal(t, "trunk", branch)
	})

	t.Run("should classify HTTP failures", func(t *testing.T) {
		t.Parallel()

		cases := map[int]error{
			http.StatusUnauthorized:        entities.ErrAuthentication,
			http.StatusNotFound:            entities.ErrNotFound,
			http.StatusInternalServerError: entities.ErrTransientNetwork,
			http.StatusUnprocessableEntity: entities.ErrProviderResponse,
		}

		for status, expected := range cases {
			// given
			mux := http.NewServeMux()
			mux.HandleFunc("/api/v3/repos/acme/widget/commits", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				fmt.Fprint(w, `{"message":"failure"}`)
			})
			provider := newTestProvider(t, mux)

			// when
			_, err := provider.ListCommits(context.Background(), widgetRef(), 5)

			// then
			require.Error(t, err, status)
			assert.ErrorIs(t, err, expected, status)
		}
	})

	t.Run("should report unreachable hosts as network errors", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.NewServeMux())
		baseURL := server.URL
		server.Close()
		provider, err := githubRepo.NewGitHubProviderRepository(repositories.ProviderOptions{
			BaseURL: baseURL,
			Token:   "ghp_test",
		})
		require.NoError(t, err)

		// when
		_, err = provider.GetCommitDetail(context.Background(), widgetRef(), "aaa111")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrTransientNetwork)
	})

	t.Run("should reject a malformed API URL", func(t *testing.T) {
		t.Parallel()

		// given
		opts := repositories.ProviderOptions{BaseURL: "://bad"}

		// when
		_, err := githubRepo.NewGitHubProviderRepository(opts)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
	})
}

func TestGitHubProviderRepositoryPullRequestPageCap(t *testing.T) {
	// given
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/widget/pulls", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		next := fmt.Sprintf("http://%s%s?page=%d", r.Host, r.URL.Path, page+1)
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
		fmt.Fprintf(w, `[{"number":%d,"title":"Closed without merge","merged_at":null}]`, page)
	})
	provider := newTestProvider(t, mux)

	hook := logtest.NewGlobal()
	previousLevel := logger.GetLevel()
	logger.SetLevel(logger.DebugLevel)
	t.Cleanup(func() {
		logger.SetLevel(previousLevel)
		hook.Reset()
	})

	// when
	pulls, err := provider.ListMergedChangeRequests(context.Background(), widgetRef(), 3)

	// then
	require.NoError(t, err)
	assert.Empty(t, pulls)
	assert.Equal(t, int32(5), calls.Load())
	found := false
	for _, entry := range hook.AllEntries() {
		if strings.Contains(entry.Message, "Stopped scanning closed pull requests") {
			found = true
			assert.Equal(t, logger.DebugLevel, entry.Level)
		}
	}
	assert.True(t, found, "expected a debug entry when the page cap ends the scan")
}
