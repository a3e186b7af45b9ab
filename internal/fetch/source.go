package fetch

import (
	"os"
	"strings"
)

// Kind classifies a test-directory argument.
type Kind int

const (
	KindDir Kind = iota
	KindArchive
	KindGit
)

func (k Kind) String() string {
	switch k {
	case KindArchive:
		return "archive"
	case KindGit:
		return "git"
	default:
		return "dir"
	}
}

// ArchiveExt marks a txtar fixture bundle.
const ArchiveExt = ".txtar"

var remotePrefixes = []string{"https://", "http://", "ssh://", "git://", "file://", "git@"}

// Source is a parsed test-directory argument.
type Source struct {
	Kind Kind
	// Location is the directory, archive path or remote URL.
	Location string
	// Ref is the tag, branch or commit for git sources. Empty selects the
	// remote's default branch.
	Ref string
}

// ParseSource classifies raw. A git remote may carry a #ref suffix.
func ParseSource(raw string) Source {
	if isRemote(raw) {
		location, ref, _ := strings.Cut(raw, "#")
		return Source{Kind: KindGit, Location: location, Ref: ref}
	}
	if strings.HasSuffix(raw, ArchiveExt) {
		if info, err := os.Stat(raw); err == nil && info.Mode().IsRegular() {
			return Source{Kind: KindArchive, Location: raw}
		}
	}
	return Source{Kind: KindDir, Location: raw}
}

func (s Source) String() string {
	if s.Ref != "" {
		return s.Location + "#" + s.Ref
	}
	return s.Location
}

func isRemote(raw string) bool {
	for _, prefix := range remotePrefixes {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	if info, err := os.Stat(raw); err == nil && info.IsDir() {
		return false
	}
	location, _, _ := strings.Cut(raw, "#")
	return strings.HasSuffix(location, ".git")
}
