package fjud

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSearchTestClient(t testing.TB, mux *http.ServeMux) (*Client, *httptest.Server) {
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := newTestClient(t, ClientOptions{
		BaseUrl:   srv.URL + "/FJUD/",
		ExportUrl: srv.URL + "/EXPORTFILE/reformat.aspx",
	})
	return client, srv
}

func TestSearchResolvesListingAnchor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/FJUD/qryresult.aspx", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "侵權行為", r.URL.Query().Get("akw"))
		fmt.Fprint(w, `<html><body><a href="/FJUD/qryresultlst.aspx?ty=SIMJUDBOOK&q=3a9f01bc">共 2 筆</a></body></html>`)
	})
	mux.HandleFunc("/FJUD/qryresultlst.aspx", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "3a9f01bc", r.URL.Query().Get("q"))
		w.Write(listingTableTest)
	})

	client, srv := newSearchTestClient(t, mux)

	judgments := client.Search(context.Background(), "侵權行為")
	require.Len(t, judgments, 2)
	require.Equal(t, "臺灣臺北地方法院 108 年度 民字 第 100 號", judgments[0].ID)
	require.Equal(t, "臺灣基隆地方法院 108 年度 家繼訴字 第 12 號", judgments[1].ID)
	require.Equal(t, srv.URL+"/FJUD/data.aspx?ty=JD&id=TPDV%2c108%2c%e6%b0%91%2c100%2c20190501%2c1", judgments[0].SourceUrl)
}

func TestSearchFollowsRedirectToListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/FJUD/qryresult.aspx", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/FJUD/qryresultlst.aspx?ty=SIMJUDBOOK&q=3a9f01bc", http.StatusFound)
	})
	mux.HandleFunc("/FJUD/qryresultlst.aspx", func(w http.ResponseWriter, r *http.Request) {
		w.Write(listingTableTest)
	})

	client, _ := newSearchTestClient(t, mux)

	judgments := client.Search(context.Background(), "侵權行為")
	require.Len(t, judgments, 2)
}

func TestSearchNoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/FJUD/qryresult.aspx", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div>查無符合條件資料</div></body></html>`)
	})

	client, _ := newSearchTestClient(t, mux)

	judgments := client.Search(context.Background(), "不存在的查詢")
	require.NotNil(t, judgments)
	require.Empty(t, judgments)
}

func TestSearchSurvivesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := newTestClient(t, ClientOptions{
		BaseUrl:   srv.URL + "/FJUD/",
		ExportUrl: srv.URL + "/EXPORTFILE/reformat.aspx",
	})
	srv.Close()

	// connection refused must degrade to an empty result, not an error or a
	// crash; batch callers write an empty output and keep going
	judgments := client.Search(context.Background(), "侵權行為")
	require.NotNil(t, judgments)
	require.Empty(t, judgments)

	records := client.SearchRecords(context.Background(), "侵權行為")
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestSearchRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/FJUD/qryresult.aspx", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/FJUD/qryresultlst.aspx?ty=SIMJUDBOOK&q=3a9f01bc">共 2 筆</a></body></html>`)
	})
	mux.HandleFunc("/FJUD/qryresultlst.aspx", func(w http.ResponseWriter, r *http.Request) {
		w.Write(listingTableTest)
	})
	mux.HandleFunc("/EXPORTFILE/reformat.aspx", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, validExportBody)
	})

	client, _ := newSearchTestClient(t, mux)

	records := client.SearchRecords(context.Background(), "侵權行為")
	require.Len(t, records, 2)
	for _, rec := range records {
		require.True(t, rec.Confirmed)
		require.Contains(t, rec.PlainTextUrl, "/EXPORTFILE/reformat.aspx?type=JD&id=")
		require.Contains(t, rec.PlainTextUrl, "ispdf=1")
		require.Contains(t, rec.Content, "主文")
	}
}
