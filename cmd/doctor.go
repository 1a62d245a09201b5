package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nibzard/taskline/internal/config"
	"github.com/nibzard/taskline/internal/logging"
	"github.com/nibzard/taskline/internal/storage"
)

// checkReport prints doctor results and remembers whether any check failed.
type checkReport struct {
	w      io.Writer
	failed bool
}

func (r *checkReport) section(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *checkReport) ok(format string, args ...any) {
	fmt.Fprintf(r.w, "  ✅ "+format+"\n", args...)
}

func (r *checkReport) warn(format string, args ...any) {
	fmt.Fprintf(r.w, "  ⚠️  "+format+"\n", args...)
}

func (r *checkReport) fail(format string, args ...any) {
	fmt.Fprintf(r.w, "  ❌ "+format+"\n", args...)
	r.failed = true
}

// doctorCommand checks the environment and configuration.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fset := flag.NewFlagSet("taskline doctor", flag.ContinueOnError)
	verbose := fset.Bool("v", false, "Verbose output")
	if err := fset.Parse(args); err != nil {
		return err
	}
	cfg := cws.Config
	if err := resolveDataFile(cfg, fset.Args()); err != nil {
		return err
	}

	r := &checkReport{w: os.Stdout}
	r.section("Taskline Doctor")
	r.section("===============")
	r.section("")

	r.section("Project root: %s", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		r.fail("Error: %v", err)
	} else {
		r.ok("OK")
	}
	r.section("")

	checkConfig(r, cws, *verbose)
	checkDataFile(r, cfg.DataFile)
	checkLogDir(r, cfg)

	r.section("Hook:")
	checkHook(r, cfg.HookCommand)
	r.section("")

	if r.failed {
		r.section("Some checks failed.")
		return errors.New("doctor checks failed")
	}
	r.section("All checks passed.")
	return nil
}

func checkConfig(r *checkReport, cws *config.ConfigWithSources, verbose bool) {
	cfg := cws.Config
	if len(cws.Files) == 0 {
		r.section("Config file: (none, using defaults)")
	} else {
		for _, f := range cws.Files {
			r.section("Config file: %s", f)
		}
	}
	for _, w := range cws.Warnings {
		r.warn("%s", w)
	}

	if logging.ValidLevel(cfg.LogLevel) {
		r.ok("log_level = %s", cfg.LogLevel)
	} else {
		r.fail("log_level = %q is not one of debug, info, warn, error", cfg.LogLevel)
	}
	if logging.ValidFormat(cfg.LogFormat) {
		r.ok("log_format = %s", cfg.LogFormat)
	} else {
		r.fail("log_format = %q is not one of text, json, logfmt", cfg.LogFormat)
	}

	if verbose {
		r.section("  Sources:")
		for _, field := range []string{"data_file", "log_dir", "log_level", "log_format", "session_log", "hook_command", "prompt"} {
			r.section("    %s: %s", field, cws.SourceOf(field))
		}
	}
	r.section("")
}

func checkDataFile(r *checkReport, path string) {
	r.section("Data file: %s", path)
	defer r.section("")

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			r.warn("Not created yet (directory %s will be created on first save)", dir)
		} else {
			r.warn("Not created yet (created on first save)")
		}
		return
	}
	if err != nil {
		r.fail("Error: %v", err)
		return
	}
	if info.IsDir() {
		r.fail("Path is a directory")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		r.fail("Cannot read: %v", err)
		return
	}
	defer f.Close()

	list, bad, err := storage.Read(f)
	if err != nil {
		r.fail("Cannot read: %v", err)
		return
	}
	r.ok("%d tasks", list.Len())
	for _, le := range bad {
		r.warn("Skipped %v", le)
	}
}

func checkLogDir(r *checkReport, cfg *config.Config) {
	r.section("Log directory: %s", cfg.LogDir)
	defer r.section("")

	info, err := os.Stat(cfg.LogDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if cfg.SessionLog {
			r.warn("Does not exist (created when the first session starts)")
		} else {
			r.ok("Not used (session_log = false)")
		}
	case err != nil:
		r.fail("Error: %v", err)
	case !info.IsDir():
		r.fail("Not a directory")
	default:
		r.ok("OK")
	}
}

// checkHook reports on the hook command. The hook is optional, so problems
// are warnings.
func checkHook(r *checkReport, command string) {
	if strings.TrimSpace(command) == "" {
		r.ok("Not configured")
		return
	}
	r.section("  command: %s", command)

	path := command
	if info, err := os.Stat(command); err != nil {
		resolved, lookErr := exec.LookPath(command)
		if lookErr != nil {
			r.warn("Not found: %v", lookErr)
			return
		}
		path = resolved
	} else if info.IsDir() {
		r.warn("Path is a directory")
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		r.warn("Cannot stat %s: %v", path, err)
		return
	}
	if !isExecutablePath(path, info) {
		r.warn("Not executable: %s", path)
		return
	}
	if path != command {
		r.ok("OK (found in PATH: %s)", path)
		return
	}
	r.ok("OK")
}

func isExecutablePath(path string, info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".exe", ".bat", ".cmd", ".com", ".ps1":
			return true
		}
		return false
	}
	return info.Mode().Perm()&0111 != 0
}
