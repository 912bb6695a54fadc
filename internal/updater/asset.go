package updater

import "strings"

// ChecksumsAsset is the conventional name of a release's checksum list.
const ChecksumsAsset = "checksums.txt"

// assetPreference lists accepted bundle archive suffixes, best first.
var assetPreference = []string{".app.tar.gz", ".app.zip", ".dmg"}

// SelectAsset picks the bundle archive to install from r: the first asset
// ending in .app.tar.gz, else the first .app.zip, else the first .dmg.
func SelectAsset(r *Release) (*Asset, bool) {
	for _, suffix := range assetPreference {
		for i := range r.Assets {
			if strings.HasSuffix(r.Assets[i].Name, suffix) {
				return &r.Assets[i], true
			}
		}
	}
	return nil, false
}

// FindAsset returns the asset named name.
func (r *Release) FindAsset(name string) (*Asset, bool) {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i], true
		}
	}
	return nil, false
}
