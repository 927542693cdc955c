package network

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter"
	"github.com/teranos/gridmap/config"
	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/logger"
)

// IsRemote reports whether a network_file value names a remote source
// (http, s3, gcs, git, or any "getter::" forced source) rather than a local path.
func IsRemote(src, pwd string) bool {
	detected, err := getter.Detect(src, pwd, getter.Detectors)
	if err != nil {
		return false
	}

	// A forced getter ("git::https://...") parses as its own scheme
	u, err := url.Parse(detected)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Scheme != "file"
}

// FetchOption customizes a Fetch call
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	httpClient *http.Client
}

// WithHTTPClient routes http and https downloads through client
func WithHTTPClient(client *http.Client) FetchOption {
	return func(o *fetchOptions) {
		o.httpClient = client
	}
}

// getters returns the go-getter protocol table, with the http getters
// replaced when a client is configured
func (o *fetchOptions) getters() map[string]getter.Getter {
	if o.httpClient == nil {
		return getter.Getters
	}
	getters := make(map[string]getter.Getter, len(getter.Getters))
	for scheme, g := range getter.Getters {
		getters[scheme] = g
	}
	httpGetter := &getter.HttpGetter{Netrc: true, Client: o.httpClient}
	getters["http"] = httpGetter
	getters["https"] = httpGetter
	return getters
}

// Fetch downloads a remote network source into dst and returns the local path
// of the model. Archives are unpacked. When dst ends up holding a single entry
// that entry is the model, otherwise dst itself is read as a CSV folder.
//
// dst is cleared first so a run never mixes files from an older fetch.
func Fetch(ctx context.Context, src, dst, pwd string, opts ...FetchOption) (string, error) {
	log := logger.ComponentLogger("network.fetch")

	var o fetchOptions
	for _, opt := range opts {
		opt(&o)
	}

	detected, err := getter.Detect(src, pwd, getter.Detectors)
	if err != nil {
		return "", errors.Wrapf(err, "failed to detect source type of %s", src)
	}

	if err := os.RemoveAll(dst); err != nil {
		return "", errors.Wrapf(err, "failed to clear cache directory %s", dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), config.DefaultDirPermissions); err != nil {
		return "", errors.Wrapf(err, "failed to create cache directory %s", filepath.Dir(dst))
	}

	log.Infow("Fetching network",
		logger.FieldSource, src,
		"detected", detected,
		"destination", dst)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Pwd:     pwd,
		Mode:    getter.ClientModeAny,
		Getters: o.getters(),
	}
	if err := client.Get(); err != nil {
		return "", errors.WithHint(
			errors.Wrapf(errors.ErrNetworkNotFound, "failed to fetch network from %s: %v", src, err),
			"check the network_file URL and your credentials for the remote store",
		)
	}

	entries, err := os.ReadDir(dst)
	if err != nil {
		return "", errors.Wrapf(err, "failed to list fetched files in %s", dst)
	}

	path := dst
	if len(entries) == 1 {
		path = filepath.Join(dst, entries[0].Name())
	}

	log.Infow("Fetch completed",
		logger.FieldNetwork, path,
		logger.FieldCount, len(entries))
	return path, nil
}
