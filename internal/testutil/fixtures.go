package testutil

import "github.com/jakoblorz/cargo-ws/internal/filesystem"

// MultiCrateRoot is where MultiCrate places its workspace.
const MultiCrateRoot = "/workspace/test-rust-project"

// SingleCrateRoot is where SingleCrate places its package.
const SingleCrateRoot = "/workspace/test-rust-project-single-crate"

// MultiCrate builds a workspace with a root package, binaries, libraries,
// examples, benches, an integration test, a cdylib and proc-macro crates.
func MultiCrate() *filesystem.MockFileSystem {
	return NewProjectBuilder(MultiCrateRoot).
		RootPackage(`[workspace.package]
version = "0.1.0"
edition = "2021"

[package]
name = "test-rust-project"
version.workspace = true
edition.workspace = true

[[bench]]
name = "fibonacci"
harness = false

[profile.release-with-debug]
inherits = "release"
debug = true

[profile.custom-opt]
inherits = "release"
opt-level = 2`).
		AddMember("core", "core", `[features]
default = ["std"]
std = []
serde = ["dep:serde"]

[dependencies]
serde = { version = "1", optional = true }
tracing = { version = "0.1", optional = true }`).
		AddMember("cli", "cli", "").
		AddMember("web-server", "web-server", `[features]
tls = []`).
		AddMember("utils", "utils", "").
		AddMember("test-cdylib", "test-cdylib", "[lib]\ncrate-type = [\"cdylib\"]").
		AddMember("test-proc-macro", "test-proc-macro", "[lib]\nproc-macro = true").
		AddSource("src/lib.rs").
		AddSource("benches/fibonacci.rs").
		AddSource("tests/integration_test.rs").
		AddSource("core/src/lib.rs").
		AddSource("cli/src/main.rs").
		AddSource("cli/src/bin/tool.rs").
		AddSource("web-server/src/lib.rs").
		AddSource("web-server/src/main.rs").
		AddSource("web-server/examples/simple.rs").
		AddSource("utils/src/lib.rs").
		AddSource("utils/benches/perf_alt.rs").
		AddSource("utils/examples/strings.rs").
		AddSource("test-cdylib/src/lib.rs").
		AddSource("test-proc-macro/src/lib.rs").
		AddFile(".cargo/config.toml", "[profile.ci]\ninherits = \"dev\"\n").
		AddFile(".gitignore", "/target\n").
		Build()
}

// SingleCrate builds a single package with a library, a binary and two
// examples.
func SingleCrate() *filesystem.MockFileSystem {
	return NewProjectBuilder(SingleCrateRoot).
		RootPackage(`[package]
name = "single-crate-core"
version = "0.1.0"
edition = "2021"

[features]
extra = []`).
		AddSource("src/lib.rs").
		AddSource("src/main.rs").
		AddSource("examples/config_demo.rs").
		AddSource("examples/data_processing.rs").
		Build()
}
