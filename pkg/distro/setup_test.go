package distro

import (
    "context"
    "errors"
    "io"
    "os"
    "strings"
    "testing"

    "github.com/sirupsen/logrus"
    "github.com/sirupsen/logrus/hooks/test"

    "github.com/nathanhaigh/cloudbiolinux/pkg/conn"
    "github.com/nathanhaigh/cloudbiolinux/pkg/env"
)

type fakeConn struct {
    outputs map[string]string
    cmds    []string
    sudos   []bool
}

func (f *fakeConn) Exec(ctx context.Context, cmd string, e map[string]string, sudo bool) (string, string, int, error) {
    f.cmds = append(f.cmds, cmd)
    f.sudos = append(f.sudos, sudo)
    return f.outputs[cmd], "", 0, nil
}
func (f *fakeConn) Put(ctx context.Context, src io.Reader, dst string, mode os.FileMode) error { return nil }
func (f *fakeConn) Get(ctx context.Context, src string) (io.ReadCloser, error) { return nil, os.ErrNotExist }
func (f *fakeConn) Close() error { return nil }

func dialFake(f *fakeConn) DialFunc {
    return func(e *env.Env) (conn.Conn, error) { return f, nil }
}

func machineConn(dist, machine string) *fakeConn {
    return &fakeConn{outputs: map[string]string{
        "cat /proc/version": "Linux version 3.2.0-23-generic (" + dist + " build)",
        "cat /etc/issue":    dist,
        "uname -m":          machine,
    }}
}

func TestSetupUbuntu(t *testing.T) {
    e := &env.Env{Distribution: env.Ubuntu, DistName: "precise", SystemInstall: "/usr/local"}
    fc := machineConn("Ubuntu", "x86_64")
    c, err := Setup(context.Background(), e, dialFake(fc))
    if err != nil { t.Fatal(err) }
    defer c.Close()
    if e.SourcesFile != "/etc/apt/sources.list.d/cloudbiolinux.list" { t.Fatalf("wrong sources file: %s", e.SourcesFile) }
    if e.AptPreferencesFile != "/etc/apt/preferences" { t.Fatalf("wrong preferences file") }
    if e.RubyVersionExt != "1.9.1" { t.Fatalf("wrong ruby ext: %q", e.RubyVersionExt) }
    if e.JavaHome != "/usr/lib/jvm/java-6-openjdk" { t.Fatalf("wrong java home: %q", e.JavaHome) }
    if len(e.StdSources) != 12 { t.Fatalf("expected 12 sources, got %d", len(e.StdSources)) }
    if e.StdSources[0] != "deb http://au.archive.ubuntu.com/ubuntu/ precise universe" {
        t.Fatalf("substitution failed: %q", e.StdSources[0])
    }
    for _, s := range e.StdSources {
        if strings.Contains(s, "%s") { t.Fatalf("unsubstituted template: %q", s) }
    }
    if e.InstallDir != "/usr/local" { t.Fatalf("install dir not aliased") }
    if !e.Is64Bit { t.Fatalf("expected 64bit") }
    if !e.UseSudo { t.Fatalf("expected sudo default") }
}

func TestSetupDefaultsAllDistributions(t *testing.T) {
    cases := []struct {
        dist   env.Distribution
        tag    string
        python string
        ruby   string
    }{
        {env.Ubuntu, "Ubuntu", "", "1.9.1"},
        {env.Debian, "Debian", "", "1.9.1"},
        {env.CentOS, "CentOS", "2.6", ""},
        {env.ScientificLinux, "Scientific Linux", "", ""},
    }
    for _, tc := range cases {
        e := &env.Env{Distribution: tc.dist, DistName: "stable"}
        c, err := Setup(context.Background(), e, dialFake(machineConn(tc.tag, "x86_64")))
        if err != nil { t.Fatalf("%s: %v", tc.dist, err) }
        _ = c.Close()
        if e.JavaHome == "" { t.Fatalf("%s: java home unset", tc.dist) }
        if e.PythonVersionExt != tc.python { t.Fatalf("%s: python ext %q", tc.dist, e.PythonVersionExt) }
        if e.RubyVersionExt != tc.ruby { t.Fatalf("%s: ruby ext %q", tc.dist, e.RubyVersionExt) }
    }
}

func TestSetupUnknownDistribution(t *testing.T) {
    e := &env.Env{Distribution: env.Distribution("gentoo")}
    _, err := Setup(context.Background(), e, dialFake(&fakeConn{}))
    var cerr *env.ConfigurationError
    if !errors.As(err, &cerr) { t.Fatalf("expected ConfigurationError, got %v", err) }
    if !strings.Contains(cerr.Msg, "gentoo") { t.Fatalf("error does not carry value: %s", cerr.Msg) }
    if len(e.StdSources) != 0 || e.JavaHome != "" { t.Fatalf("profile fields set after failed dispatch") }
}

func TestJavaHomePreserved(t *testing.T) {
    for _, dist := range []env.Distribution{env.Ubuntu, env.CentOS} {
        e := &env.Env{Distribution: dist, DistName: "precise", JavaHome: "/custom/jdk"}
        c, err := Setup(context.Background(), e, dialFake(machineConn("Ubuntu", "x86_64")))
        if err != nil { t.Fatal(err) }
        _ = c.Close()
        if e.JavaHome != "/custom/jdk" { t.Fatalf("%s: java home overwritten: %q", dist, e.JavaHome) }
    }
}

func TestConfigureSudo(t *testing.T) {
    fc := machineConn("CentOS", "x86_64")
    e := &env.Env{Distribution: env.CentOS}
    if _, err := Setup(context.Background(), e, dialFake(fc)); err != nil { t.Fatal(err) }
    if !e.UseSudo { t.Fatalf("unset use_sudo should default to true") }
    if _, err := e.SafeExec(context.Background(), "whoami"); err != nil { t.Fatal(err) }
    if !fc.sudos[len(fc.sudos)-1] { t.Fatalf("safe exec not bound to sudo") }

    fc = machineConn("CentOS", "x86_64")
    e = &env.Env{Distribution: env.CentOS, UseSudoFlag: "no"}
    if _, err := Setup(context.Background(), e, dialFake(fc)); err != nil { t.Fatal(err) }
    if e.UseSudo { t.Fatalf("use_sudo=no should disable sudo") }
    if _, err := e.SafeExec(context.Background(), "whoami"); err != nil { t.Fatal(err) }
    if fc.sudos[len(fc.sudos)-1] { t.Fatalf("safe exec bound to sudo despite use_sudo=no") }
}

func TestNixpkgsUnsupportedDistribution(t *testing.T) {
    logger, hook := test.NewNullLogger()
    req := true
    e := &env.Env{Distribution: env.CentOS, NixpkgsRequested: &req, Log: logger}
    c, err := Setup(context.Background(), e, dialFake(machineConn("CentOS", "x86_64")))
    if err != nil { t.Fatal(err) }
    _ = c.Close()
    if e.Nixpkgs { t.Fatalf("nixpkgs enabled on centos") }
    warned := false
    for _, entry := range hook.AllEntries() {
        if entry.Level == logrus.WarnLevel { warned = true }
    }
    if !warned { t.Fatalf("expected a warning for nixpkgs on centos") }
}

func TestNixpkgsDebian(t *testing.T) {
    req := true
    e := &env.Env{Distribution: env.Debian, DistName: "stable", NixpkgsRequested: &req}
    c, err := Setup(context.Background(), e, dialFake(machineConn("Debian", "x86_64")))
    if err != nil { t.Fatal(err) }
    _ = c.Close()
    if !e.Nixpkgs { t.Fatalf("nixpkgs not enabled on debian") }

    e = &env.Env{Distribution: env.Debian, DistName: "stable"}
    c, err = Setup(context.Background(), e, dialFake(machineConn("Debian", "x86_64")))
    if err != nil { t.Fatal(err) }
    _ = c.Close()
    if e.Nixpkgs { t.Fatalf("nixpkgs enabled without request") }
}

func TestValidateTargetIssueFallback(t *testing.T) {
    fc := &fakeConn{outputs: map[string]string{
        "cat /proc/version": "Linux version 2.6.32 (gcc version 4.4.5)",
        "cat /etc/issue":    "Debian GNU/Linux 6.0",
        "uname -m":          "x86_64",
    }}
    e := &env.Env{Distribution: env.Debian, DistName: "squeeze"}
    c, err := Setup(context.Background(), e, dialFake(fc))
    if err != nil { t.Fatal(err) }
    _ = c.Close()
}

func TestValidateTargetMismatch(t *testing.T) {
    fc := &fakeConn{outputs: map[string]string{
        "cat /proc/version": "Linux version 2.6.32 (Red Hat 4.4.7)",
        "cat /etc/issue":    "CentOS release 6.2",
    }}
    e := &env.Env{Distribution: env.Ubuntu, DistName: "precise"}
    _, err := Setup(context.Background(), e, dialFake(fc))
    var cerr *env.ConfigurationError
    if !errors.As(err, &cerr) { t.Fatalf("expected mismatch error, got %v", err) }
}

func TestArchitectureProbe32Bit(t *testing.T) {
    e := &env.Env{Distribution: env.CentOS}
    c, err := Setup(context.Background(), e, dialFake(machineConn("CentOS", "i686")))
    if err != nil { t.Fatal(err) }
    _ = c.Close()
    if e.Is64Bit { t.Fatalf("i686 reported as 64bit") }
}
