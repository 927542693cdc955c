package httpclient

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		errContains string
	}{
		{"https allowed", "https://example.com/net.sqlite", ""},
		{"http allowed", "http://example.com", ""},
		{"public IP allowed", "http://8.8.8.8/", ""},
		{"file scheme", "file:///etc/passwd", "scheme"},
		{"ftp scheme", "ftp://example.com", "scheme"},
		{"localhost", "http://localhost/net", "localhost"},
		{"localhost subdomain", "http://admin.localhost/", "localhost"},
		{"loopback", "http://127.0.0.1/", "private IP"},
		{"10/8", "http://10.0.0.1/", "private IP"},
		{"192.168/16", "http://192.168.1.1/", "private IP"},
		{"172.16/12", "http://172.16.0.1/", "private IP"},
		{"metadata endpoint", "http://169.254.169.254/latest", "private IP"},
		{"empty hostname", "http:///path", "hostname"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			require.NoError(t, err)

			err = ValidateURL(u)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"10.1.2.3", true},
		{"172.31.255.255", true},
		{"172.32.0.1", false},
		{"192.168.0.1", true},
		{"127.0.0.1", true},
		{"169.254.1.1", true},
		{"0.0.0.0", true},
		{"224.0.0.1", true},
		{"8.8.8.8", false},
		{"::1", true},
		{"fe80::1", true},
		{"fd00::1", true},
		{"fec0::1", true},
		{"ff02::1", true},
		{"2001:db8::1", true},
		{"2606:4700:4700::1111", false},
		{"::ffff:10.0.0.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip)
			assert.Equal(t, tt.private, IsPrivateIP(ip))
		})
	}
}

func TestNew_AllowsLoopbackWhenNotBlocking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Options{Timeout: 5 * time.Second})
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew_BlocksLoopbackDial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Options{Timeout: 5 * time.Second, BlockPrivate: true})
	_, err := client.Get(server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private IP address blocked")
}

func TestNew_MaxRedirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/again", http.StatusFound)
	}))
	defer server.Close()

	client := New(Options{Timeout: 5 * time.Second, MaxRedirects: 3})
	_, err := client.Get(server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 3 redirects")
}

func TestNew_RedirectToPrivateBlocked(t *testing.T) {
	client := New(Options{BlockPrivate: true})

	req, err := http.NewRequest(http.MethodGet, "http://10.0.0.1/net.sqlite", nil)
	require.NoError(t, err)

	err = client.CheckRedirect(req, []*http.Request{{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect blocked")
}
