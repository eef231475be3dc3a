// Package testutil builds in-memory Cargo projects for tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/cargo-ws/internal/filesystem"
)

// ProjectBuilder helps create test Cargo projects on a MockFileSystem.
type ProjectBuilder struct {
	fs       *filesystem.MockFileSystem
	root     string
	members  []string
	rootBody string
}

// NewProjectBuilder creates a builder for a project rooted at root.
func NewProjectBuilder(root string) *ProjectBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &ProjectBuilder{
		fs:   fs,
		root: root,
	}
}

// RootPackage writes extra TOML (typically a [package] table) into the root
// manifest next to the generated [workspace] table.
func (pb *ProjectBuilder) RootPackage(body string) *ProjectBuilder {
	pb.rootBody = body
	return pb
}

// AddMember adds a workspace member with a minimal manifest. extra is
// appended to the manifest verbatim.
func (pb *ProjectBuilder) AddMember(name, path, extra string) *ProjectBuilder {
	pb.members = append(pb.members, path)

	manifest := fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n", name)
	if extra != "" {
		manifest += "\n" + extra + "\n"
	}
	pb.fs.AddFile(filepath.Join(pb.root, path, "Cargo.toml"), []byte(manifest))
	return pb
}

// AddSource adds an empty-bodied Rust source file relative to the root.
func (pb *ProjectBuilder) AddSource(rel string) *ProjectBuilder {
	pb.fs.AddFile(filepath.Join(pb.root, rel), []byte("fn main() {}\n"))
	return pb
}

// AddFile adds an arbitrary file relative to the root.
func (pb *ProjectBuilder) AddFile(rel, content string) *ProjectBuilder {
	pb.fs.AddFile(filepath.Join(pb.root, rel), []byte(content))
	return pb
}

// Build writes the root manifest and returns the filesystem.
func (pb *ProjectBuilder) Build() *filesystem.MockFileSystem {
	var b strings.Builder
	if len(pb.members) > 0 {
		b.WriteString("[workspace]\nmembers = [\n")
		for _, m := range pb.members {
			fmt.Fprintf(&b, "    %q,\n", m)
		}
		b.WriteString("]\nresolver = \"2\"\n")
	}
	if pb.rootBody != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pb.rootBody)
		b.WriteString("\n")
	}

	pb.fs.AddFile(filepath.Join(pb.root, "Cargo.toml"), []byte(b.String()))
	return pb.fs
}

// FileSystem returns the mock filesystem
func (pb *ProjectBuilder) FileSystem() *filesystem.MockFileSystem {
	return pb.fs
}
