package distro

import (
    "fmt"
    "os"
    "os/exec"
    "strings"

    "github.com/nathanhaigh/cloudbiolinux/pkg/env"
)

const defaultJavaHome = "/usr/lib/jvm/java-6-openjdk"

// hook for tests
var vagrantSSHConfig = func() (string, error) {
    out, err := exec.Command("vagrant", "ssh-config").Output()
    return string(out), err
}

// setupLocalEnv fills connection identity for a localhost target from the
// local process environment.
func setupLocalEnv(e *env.Env) {
    e.Logger().Info("get local environment")
    if e.User == "" {
        e.User = os.Getenv("USER")
    }
    if e.JavaHome == "" {
        e.JavaHome = os.Getenv("JAVA_HOME")
        if e.JavaHome == "" { e.JavaHome = defaultJavaHome }
    }
}

// setupVagrantEnv derives connection identity from vagrant ssh-config.
// Subprocess failures propagate to the caller untouched.
func setupVagrantEnv(e *env.Env) error {
    log := e.Logger()
    log.Info("get vagrant environment")
    raw, err := vagrantSSHConfig()
    if err != nil { return err }
    cfg := map[string]string{}
    for _, line := range strings.Split(raw, "\n") {
        fields := strings.Fields(line)
        if len(fields) >= 2 {
            cfg[fields[0]] = fields[1]
        }
    }
    for _, k := range []string{"User", "HostName", "Port", "IdentityFile"} {
        if cfg[k] == "" {
            return &env.ParseError{Missing: k}
        }
    }
    e.User = cfg["User"]
    e.Hosts = []string{cfg["HostName"]}
    e.Port = cfg["Port"]
    e.KeyFile = cfg["IdentityFile"]
    e.HostString = fmt.Sprintf("%s@%s:%s", e.User, e.Hosts[0], e.Port)
    log.Debugf("ssh %s", e.HostString)
    return nil
}
