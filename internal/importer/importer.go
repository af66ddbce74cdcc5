// Package importer maintains the command catalog from an external
// technique repository: it clones or updates the repo with git, walks
// its yml/ tree, and extracts catalog entries from Commands blocks.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/noxsec/attacksim/internal/catalog"
)

// Importer syncs and parses a technique repository.
type Importer struct {
	// Git is the git binary to invoke. Empty means "git" from PATH.
	Git string

	// Logf, when set, receives one line per skipped file or entry.
	Logf func(format string, args ...any)
}

// Sync clones repoURL into workDir/name, or pulls if the clone already
// exists. It returns the repository directory.
func (im *Importer) Sync(ctx context.Context, workDir, repoURL, name string) (string, error) {
	dir := filepath.Join(workDir, name)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := im.git(ctx, workDir, "clone", repoURL, dir); err != nil {
			return "", fmt.Errorf("cloning %s: %w", repoURL, err)
		}
		return dir, nil
	}

	if err := im.git(ctx, dir, "pull", "--ff-only"); err != nil {
		return "", fmt.Errorf("updating %s: %w", dir, err)
	}
	return dir, nil
}

func (im *Importer) git(ctx context.Context, dir string, args ...string) error {
	bin := im.Git
	if bin == "" {
		bin = "git"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// techniqueFile is the shape of one YAML file in the repo's yml/ tree.
type techniqueFile struct {
	Commands []techniqueEntry `yaml:"Commands"`
}

type techniqueEntry struct {
	Command     string  `yaml:"Command"`
	Description string  `yaml:"Description"`
	Severity    string  `yaml:"Severity"`
	MitreID     mitreID `yaml:"MitreID"`
}

// mitreID accepts either a scalar or a list; a list keeps its first
// element, matching how upstream files tag multi-technique commands.
type mitreID string

func (m *mitreID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		if len(list) > 0 {
			*m = mitreID(list[0])
		}
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*m = mitreID(s)
	return nil
}

// Parse walks repoDir/yml for .yml and .yaml files and extracts catalog
// entries in file-walk order. Unparseable files and entries missing a
// Command or Description are logged and skipped, never fatal.
func (im *Importer) Parse(repoDir string) ([]catalog.CommandSpec, error) {
	root := filepath.Join(repoDir, "yml")
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("technique repo has no yml directory: %w", err)
	}

	var specs []catalog.CommandSpec
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			im.logf("skipping %s: %v", path, err)
			return nil
		}
		var file techniqueFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			im.logf("skipping %s: %v", path, err)
			return nil
		}

		for _, entry := range file.Commands {
			spec, ok := im.toSpec(path, entry)
			if ok {
				specs = append(specs, spec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return specs, nil
}

func (im *Importer) toSpec(path string, entry techniqueEntry) (catalog.CommandSpec, bool) {
	if entry.Command == "" || entry.Description == "" {
		im.logf("skipping malformed command in %s", path)
		return catalog.CommandSpec{}, false
	}

	sev := catalog.Severity(entry.Severity)
	if entry.Severity == "" {
		sev = catalog.Informational
	} else if !sev.Valid() {
		im.logf("unknown severity %q in %s, using Informational", entry.Severity, path)
		sev = catalog.Informational
	}

	tag := string(entry.MitreID)
	if tag == "" {
		tag = "N/A"
	}

	return catalog.CommandSpec{
		Command:        entry.Command,
		Description:    entry.Description,
		Severity:       sev,
		MitreAttackTag: tag,
	}, true
}

func (im *Importer) logf(format string, args ...any) {
	if im.Logf != nil {
		im.Logf(format, args...)
	}
}
