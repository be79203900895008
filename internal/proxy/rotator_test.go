package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotator_RoundRobin(t *testing.T) {
	r, err := NewRotator(context.Background(), []string{"http://a:1", "http://b:2"}, "")
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "http://a:1", r.Get())
	assert.Equal(t, "http://b:2", r.Get())
	assert.Equal(t, "http://a:1", r.Get())
}

func TestRotator_Empty(t *testing.T) {
	r, err := NewRotator(context.Background(), nil, "http://categories.test/")
	require.NoError(t, err)

	assert.Zero(t, r.Len())
	assert.Empty(t, r.Get())
}

func TestRotator_DropsProxiesThatFailTheCheck(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer good.Close()

	refusing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer refusing.Close()

	r, err := NewRotator(context.Background(), []string{refusing.URL, good.URL}, "http://categories.test/api")
	require.NoError(t, err)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, good.URL, r.Get())
}
