package distro

import "github.com/nathanhaigh/cloudbiolinux/pkg/env"

func setupCentOS(e *env.Env) {
    e.Logger().Info("centos setup")
    e.PythonVersionExt = "2.6"
    e.RubyVersionExt = ""
    if e.JavaHome == "" {
        e.JavaHome = "/etc/alternatives/java_sdk"
    }
}

func setupScientificLinux(e *env.Env) {
    e.Logger().Info("scientificlinux setup")
    e.PipCmd = "pip-python"
    if e.JavaHome == "" {
        e.JavaHome = "/etc/alternatives/java_sdk"
    }
}
