package osdr

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/astraldata/biograph/internal/httpclient"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 0, 0, zap.NewNop().Sugar()).
		WithHTTPClient(httpclient.WrapClient(srv.Client()))
	return client, srv
}

func TestFetchStudiesPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/studies", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		fmt.Fprintf(w, `{"results": [{"study_id": "GLDS-%s", "title": "Study %s"}], "total_pages": 3}`, page, page)
	})

	client, _ := newTestClient(t, mux)

	studies, err := client.FetchStudies(context.Background())
	require.NoError(t, err)
	require.Len(t, studies, 3)
	require.Equal(t, "GLDS-1", studies[0].StudyID)
	require.Equal(t, "GLDS-3", studies[2].StudyID)
}

func TestFetchStudyFilesFillsStudyID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/GLDS-100", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [{"id": "f1", "name": "a.csv"}, {"id": "f2", "name": "b.csv", "study_id": "GLDS-override"}]}`)
	})

	client, _ := newTestClient(t, mux)

	files, err := client.FetchStudyFiles(context.Background(), "GLDS-100")
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "GLDS-100", files[0].StudyID, "missing study_id filled from request")
	require.Equal(t, "GLDS-override", files[1].StudyID, "explicit study_id preserved")
}

func TestFetchStudiesUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.FetchStudies(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}
