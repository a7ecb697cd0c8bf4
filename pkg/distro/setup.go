package distro

import (
    "context"
    "fmt"
    "strings"

    "github.com/nathanhaigh/cloudbiolinux/pkg/conn"
    "github.com/nathanhaigh/cloudbiolinux/pkg/env"
    "github.com/nathanhaigh/cloudbiolinux/pkg/facts"
)

// DialFunc opens the transport for a resolved environment. Injected so the
// pass can be exercised without a live host.
type DialFunc func(e *env.Env) (conn.Conn, error)

// Setup runs one environment setup pass: host resolution, distribution
// profile, target validation, compatibility shim, nixpkgs toggle, sudo policy
// and the architecture probe, in that order. The returned connection is live
// and owned by the caller; the package steps run over the same connection.
func Setup(ctx context.Context, e *env.Env, dial DialFunc) (conn.Conn, error) {
    log := e.Logger()
    log.Infof("distribution %s", e.Distribution)

    if len(e.Hosts) == 1 && e.Hosts[0] == "vagrant" {
        if err := setupVagrantEnv(e); err != nil { return nil, err }
    } else if len(e.Hosts) == 1 && e.Hosts[0] == "localhost" {
        setupLocalEnv(e)
    }

    switch e.Distribution {
    case env.Ubuntu:
        setupUbuntu(e)
    case env.Debian:
        setupDebian(e)
    case env.CentOS:
        setupCentOS(e)
    case env.ScientificLinux:
        setupScientificLinux(e)
    default:
        return nil, &env.ConfigurationError{Msg: fmt.Sprintf("unexpected distribution %q", string(e.Distribution))}
    }

    c, err := dial(e)
    if err != nil { return nil, err }

    if err := validateTarget(ctx, c, e); err != nil {
        _ = c.Close()
        return nil, err
    }
    fleetCompat(e)
    setupNixpkgs(e)
    configureSudo(e, c)

    // lets us check for packages only available on 64bit machines
    machine, err := facts.Machine(ctx, c)
    if err != nil {
        _ = c.Close()
        return nil, err
    }
    e.Is64Bit = strings.Contains(machine, "_64")
    return c, nil
}

// validateTarget checks that the live machine matches the declared
// distribution. Only debian-family targets are checked; RPM-family targets
// are left unvalidated.
func validateTarget(ctx context.Context, c conn.Conn, e *env.Env) error {
    log := e.Logger()
    log.Debugf("checking target distribution %s", e.Distribution)
    if !e.Distribution.DebianFamily() {
        log.Debug("no live check for this target distro")
        return nil
    }
    want := string(e.Distribution)
    tag, err := facts.KernelVersion(ctx, c)
    if err != nil { return err }
    if strings.Contains(strings.ToLower(tag), want) { return nil }
    // hmm, try the issue file
    issue, err := facts.Issue(ctx, c)
    if err != nil { return err }
    if strings.Contains(strings.ToLower(issue), want) { return nil }
    return &env.ConfigurationError{Msg: "distribution does not match machine; is the target config correct for " + want}
}

// fleetCompat mirrors the system install path into InstallDir, the field name
// the fleet manager reads.
func fleetCompat(e *env.Env) {
    e.InstallDir = e.SystemInstall
}

// setupNixpkgs resolves the nixpkgs overlay request. Nix packages are only
// supported on debian-family targets for now; getting Nix installed from the
// .rpm would make this work elsewhere.
func setupNixpkgs(e *env.Env) {
    log := e.Logger()
    nixpkgs := false
    if e.NixpkgsRequested != nil {
        if e.Distribution.DebianFamily() {
            nixpkgs = *e.NixpkgsRequested
        } else {
            log.Warnf("nixpkgs are currently not supported for %s", e.Distribution)
        }
    }
    if nixpkgs {
        log.Info("nixpkgs: supported")
    } else {
        log.Debug("nixpkgs: ignored")
    }
    e.Nixpkgs = nixpkgs
}

// configureSudo normalizes the use_sudo flag and binds SafeExec so
// non-privileged targets still work.
func configureSudo(e *env.Env, c conn.Conn) {
    flag := e.UseSudoFlag
    if flag == "" { flag = "true" }
    switch strings.ToLower(flag) {
    case "true", "yes":
        e.UseSudo = true
        e.SafeExec = execWith(c, true)
    default:
        e.UseSudo = false
        e.SafeExec = execWith(c, false)
    }
}

func execWith(c conn.Conn, sudo bool) env.Exec {
    return func(ctx context.Context, cmd string) (string, error) {
        out, errOut, exit, err := c.Exec(ctx, cmd, nil, sudo)
        if err != nil { return "", err }
        if exit != 0 {
            return out, fmt.Errorf("command %q exited %d: %s", cmd, exit, strings.TrimSpace(errOut))
        }
        return out, nil
    }
}
