// Package selector decides which backend is authoritative for a request.
// Everything here is a pure function of configuration: no I/O, no globals.
package selector

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/storage"
)

type Backend string

const (
	Remote Backend = "remote"
	File   Backend = "file"
)

type Op int

const (
	Read Op = iota
	Write
)

func (o Op) String() string {
	if o == Write {
		return "write"
	}
	return "read"
}

// Input is the configuration snapshot the decision is made from.
type Input struct {
	RemoteURL    string
	ServiceKey   string
	HostPattern  string
	MinKeyLength int
	RestrictedFS bool
	// Resources limits the kinds served by the remote store. Empty means all.
	Resources []models.Kind
}

type Decision struct {
	Backend Backend
	// FileWritable is false when file writes would not survive a restart.
	// Services consult it before falling back from Remote to File.
	FileWritable bool
}

// Select returns the authoritative backend for kind and op.
//
//	valid remote,   writable fs   -> Remote (fallback to File allowed)
//	valid remote,   restricted fs -> Remote (no fallback)
//	invalid remote, writable fs   -> File
//	invalid remote, restricted fs -> File for reads, ErrConfiguration for writes
func Select(in Input, kind models.Kind, op Op) (Decision, error) {
	d := Decision{FileWritable: !in.RestrictedFS}

	if RemoteConfigured(in) && servesKind(in.Resources, kind) {
		d.Backend = Remote
		return d, nil
	}

	d.Backend = File
	if op == Write && in.RestrictedFS {
		return d, fmt.Errorf(
			"%w: cannot persist %s: remote store is not configured and the filesystem is read-only; set remote.url and remote.service_key",
			storage.ErrConfiguration, kind,
		)
	}
	return d, nil
}

// RemoteConfigured reports whether the remote credentials are syntactically valid.
func RemoteConfigured(in Input) bool {
	key := strings.TrimSpace(in.ServiceKey)
	if strings.TrimSpace(in.RemoteURL) == "" || key == "" || len(key) < in.MinKeyLength {
		return false
	}

	u, err := url.Parse(in.RemoteURL)
	if err != nil {
		return false
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}
	if in.HostPattern == "" {
		return true
	}
	ok, err := path.Match(strings.ToLower(in.HostPattern), strings.ToLower(host))
	return err == nil && ok
}

func servesKind(resources []models.Kind, kind models.Kind) bool {
	if len(resources) == 0 {
		return true
	}
	for _, r := range resources {
		if r == kind {
			return true
		}
	}
	return false
}
