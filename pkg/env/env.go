package env

import (
    "context"

    "github.com/sirupsen/logrus"
)

// Distribution is the closed set of supported target distributions.
type Distribution string

const (
    Ubuntu          Distribution = "ubuntu"
    CentOS          Distribution = "centos"
    ScientificLinux Distribution = "scientificlinux"
    Debian          Distribution = "debian"
)

func ParseDistribution(s string) (Distribution, error) {
    switch d := Distribution(s); d {
    case Ubuntu, CentOS, ScientificLinux, Debian:
        return d, nil
    }
    return "", &ConfigurationError{Msg: "unexpected distribution " + s}
}

func (d Distribution) DebianFamily() bool { return d == Ubuntu || d == Debian }

// Exec runs a command on the target and returns its stdout. It is bound to
// either privileged or plain execution by the sudo policy selector.
type Exec func(ctx context.Context, cmd string) (string, error)

// Env is the environment context for one setup pass. It is created by the
// caller, mutated in place by exactly one pass, and read afterwards by the
// package steps. Caller-supplied fields are never overwritten; resolvers and
// profiles only fill fields still at their zero value.
type Env struct {
    // connection identity
    Hosts      []string
    User       string
    Port       string
    KeyFile    string
    HostString string

    // distribution identity
    Distribution Distribution
    DistName     string

    // package management
    StdSources         []string
    SourcesFile        string
    AptPreferencesFile string

    // runtime defaults
    PythonVersionExt string
    RubyVersionExt   string
    JavaHome         string
    PipCmd           string

    // policy
    UseSudoFlag      string
    UseSudo          bool
    SafeExec         Exec
    NixpkgsRequested *bool
    Nixpkgs          bool
    Is64Bit          bool

    // compatibility with the fleet manager, which reads install_dir
    SystemInstall string
    InstallDir    string

    Log logrus.FieldLogger
}

func (e *Env) Logger() logrus.FieldLogger {
    if e.Log == nil { e.Log = logrus.StandardLogger() }
    return e.Log
}
