package api

const (
	// DefaultManifest is the optional per-project configuration file.
	// Projects without one run entirely on the defaults from Default.
	DefaultManifest = "devkit.yaml"

	DefaultEnvFile     = ".env"
	DefaultEnvTemplate = ".env.example"

	DefaultLogDir      = "logs"
	DefaultServerLog   = "server.log"
	DefaultActivityLog = "activity.log"

	// DefaultInstallScriptURL is fetched and run through sh when the
	// package manager is missing from PATH.
	DefaultInstallScriptURL = "https://astral.sh/uv/install.sh"
)

// Marker files for one-time host setup actions. Reserved names; no
// current step reads or writes them.
const (
	DockerCleanedFlag     = ".docker_cleaned"
	DesktopConfiguredFlag = ".desktop_configured"
)

// Manifest is the devkit.yaml configuration format. Every field is
// optional; absent fields keep the defaults from Default.
type Manifest struct {
	Project string   `yaml:"project"`
	Env     EnvFiles `yaml:"env"`
	Logs    LogFiles `yaml:"logs"`
	Tools   ToolSet  `yaml:"tools"`

	// Set by the loader, not from YAML.
	Dir string `yaml:"-"`
}

// EnvFiles names the runtime environment file and the committed
// template it is copied from, relative to the project directory.
type EnvFiles struct {
	File     string `yaml:"file"`
	Template string `yaml:"template"`
}

// LogFiles names the log directory, the files prepared inside it, and
// the glob patterns used when listing logs.
type LogFiles struct {
	Dir      string   `yaml:"dir"`
	Server   string   `yaml:"server"`
	Activity string   `yaml:"activity"`
	Patterns []string `yaml:"patterns"`
}

// ToolSet holds the external commands the pipelines shell out to. Each
// entry is a full argv; the first element is the executable.
type ToolSet struct {
	Installer Installer `yaml:"installer"`
	Sync      []string  `yaml:"sync"`
	Lint      []string  `yaml:"lint"`
	Format    []string  `yaml:"format"`
	Imports   []string  `yaml:"imports"`
	Test      []string  `yaml:"test"`
}

// Installer describes the package manager both pipelines depend on.
type Installer struct {
	Command   string   `yaml:"command"`   // executable probed on PATH
	Version   []string `yaml:"version"`   // argv that prints the version
	ScriptURL string   `yaml:"scriptURL"` // install script used when Command is missing
}

// Default returns the manifest used when no devkit.yaml is present:
// the uv package manager with ruff, black, isort and pytest.
func Default() *Manifest {
	return &Manifest{
		Env: EnvFiles{
			File:     DefaultEnvFile,
			Template: DefaultEnvTemplate,
		},
		Logs: LogFiles{
			Dir:      DefaultLogDir,
			Server:   DefaultServerLog,
			Activity: DefaultActivityLog,
			Patterns: []string{"*.log"},
		},
		Tools: ToolSet{
			Installer: Installer{
				Command:   "uv",
				Version:   []string{"uv", "--version"},
				ScriptURL: DefaultInstallScriptURL,
			},
			Sync:    []string{"uv", "sync", "--all-extras"},
			Lint:    []string{"uv", "run", "ruff", "check", "--fix", "."},
			Format:  []string{"uv", "run", "black", "."},
			Imports: []string{"uv", "run", "isort", "."},
			Test:    []string{"uv", "run", "pytest", "-m", "not integration", "-v", "--tb=short"},
		},
	}
}
