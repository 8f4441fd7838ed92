package mojang

import (
	"errors"

	"github.com/Masterminds/semver/v3"
)

const (
	// TypeSnapshot is a snapshot release
	TypeSnapshot = "snapshot"
	// TypeRelease is a full "normal" release
	TypeRelease = "release"
	// TypeOldBeta is a "old_beta" release
	TypeOldBeta = "old_beta"
	// TypeOldAlpha is a "old_alpha" release
	TypeOldAlpha = "old_alpha"
)

// ErrVersionNotFound is returned if no version matches a query
var ErrVersionNotFound = errors.New("version not found")

// VersionEntry is one version in the version list
type VersionEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
	// SHA1 of the version manifest (only set in the v2 list)
	SHA1 string `json:"sha1,omitempty"`
}

// VersionList is the response of the version manifest endpoint. Newest versions come first
type VersionList struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []VersionEntry `json:"versions"`
}

// Find returns the version matching query. query can be
//   - "latest" or "release" for the latest release
//   - "snapshot" for the latest snapshot
//   - an exact version id like "1.19.2" or "23w13a"
//   - a semver constraint like "~1.19" (matches the newest release)
func (l *VersionList) Find(query string) (*VersionEntry, error) {
	switch query {
	case "latest", "release":
		query = l.Latest.Release
	case "snapshot":
		query = l.Latest.Snapshot
	}

	for i := range l.Versions {
		if l.Versions[i].ID == query {
			return &l.Versions[i], nil
		}
	}

	constraint, err := semver.NewConstraint(query)
	if err != nil {
		return nil, ErrVersionNotFound
	}
	for i, v := range l.Versions {
		if v.Type != TypeRelease {
			continue
		}
		// some old versions are not valid semver
		semverVersion, err := semver.NewVersion(v.ID)
		if err != nil {
			continue
		}
		if constraint.Check(semverVersion) {
			return &l.Versions[i], nil
		}
	}
	return nil, ErrVersionNotFound
}
