package mock

import (
	"net/http/httptest"
	"testing"
)

// Start serves b until the end of the test. The returned base URL includes
// the /api prefix.
func Start(t testing.TB, b *Backend) string {
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}
