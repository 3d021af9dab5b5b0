package app

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hyperifyio/gocompare/internal/render"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// deriveOutputPath returns a stable output path under the output directory
// for a pair of names. The filename joins both slugs with a short hash of the
// normalised pair so that names which slugify alike do not collide.
func deriveOutputPath(cfg Config) string {
	root := strings.TrimSpace(cfg.OutputDir)
	if root == "" {
		root = DefaultOutputDir
	}
	a := strings.ToLower(strings.TrimSpace(cfg.NameA))
	b := strings.ToLower(strings.TrimSpace(cfg.NameB))
	var stem string
	if a == "" && b == "" {
		stem = slugify(strings.TrimSuffix(filepath.Base(cfg.InputPath), filepath.Ext(cfg.InputPath)))
	} else {
		stem = slugify(a) + "-vs-" + slugify(b)
	}
	h := sha256.Sum256([]byte(a + "\x00" + b + "\x00" + cfg.InputPath))
	short := hex.EncodeToString(h[:])[:12]
	return filepath.Join(root, stem+"-"+short+render.Extension(cfg.Format))
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "comparison"
	}
	return s
}
