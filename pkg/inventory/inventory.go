package inventory

import (
    "os"
    "path/filepath"

    "gopkg.in/yaml.v3"

    "github.com/nathanhaigh/cloudbiolinux/pkg/env"
)

// target is the on-disk shape of one provisioning target. Optional fields
// left out here stay unset in the environment and get filled by the resolvers
// and profiles; fields set here are never overwritten later.
type target struct {
    Hosts         []string `yaml:"hosts"`
    Distribution  string   `yaml:"distribution"`
    DistName      string   `yaml:"dist_name"`
    User          string   `yaml:"user"`
    Port          string   `yaml:"port"`
    KeyFile       string   `yaml:"key_file"`
    JavaHome      string   `yaml:"java_home"`
    UseSudo       string   `yaml:"use_sudo"`
    Nixpkgs       *bool    `yaml:"nixpkgs"`
    SystemInstall string   `yaml:"system_install"`
}

// LoadTarget reads a target file and assembles the environment for one setup
// pass. An unknown distribution fails here, before anything is dialed.
func LoadTarget(path string) (*env.Env, error) {
    b, err := os.ReadFile(path)
    if err != nil {
        return nil, err
    }
    var t target
    if err := yaml.Unmarshal(b, &t); err != nil {
        return nil, err
    }
    dist, err := env.ParseDistribution(t.Distribution)
    if err != nil {
        return nil, err
    }
    return &env.Env{
        Hosts:            t.Hosts,
        Distribution:     dist,
        DistName:         t.DistName,
        User:             t.User,
        Port:             t.Port,
        KeyFile:          expandHome(t.KeyFile),
        JavaHome:         t.JavaHome,
        UseSudoFlag:      t.UseSudo,
        NixpkgsRequested: t.Nixpkgs,
        SystemInstall:    t.SystemInstall,
    }, nil
}

func expandHome(path string) string {
    if path == "" { return path }
    if path[0] == '~' {
        return filepath.Join(os.Getenv("HOME"), path[1:])
    }
    return path
}
