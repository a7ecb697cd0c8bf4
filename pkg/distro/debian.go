package distro

import "github.com/nathanhaigh/cloudbiolinux/pkg/env"

func setupUbuntu(e *env.Env) {
    e.Logger().Info("ubuntu setup")
    shared := setupDebGeneral(e)
    sources := []string{
        "deb http://au.archive.ubuntu.com/ubuntu/ %s universe", // unsupported repos
        "deb http://au.archive.ubuntu.com/ubuntu/ %s multiverse",
        "deb http://au.archive.ubuntu.com/ubuntu/ %s-updates universe",
        "deb http://au.archive.ubuntu.com/ubuntu/ %s-updates multiverse",
        "deb http://archive.canonical.com/ubuntu %s partner", // partner repositories
        "deb http://downloads-distro.mongodb.org/repo/ubuntu-upstart dist 10gen", // mongodb
        "deb http://cran.ms.unimelb.edu.au/bin/linux/ubuntu %s/", // latest R versions
        "deb http://archive.cloudera.com/debian maverick-cdh3 contrib", // Hadoop
        "deb http://archive.canonical.com/ubuntu %s partner", // sun-java
        "deb http://ppa.launchpad.net/freenx-team/ppa/ubuntu %s main", // Free-NX
    }
    sources = append(sources, shared...)
    e.StdSources = addSourceVersions(e, sources)
}

func setupDebian(e *env.Env) {
    e.Logger().Info("debian setup")
    shared := setupDebGeneral(e)
    sources := []string{
        "deb http://downloads-distro.mongodb.org/repo/debian-sysvinit dist 10gen", // mongodb
        "deb http://cran.stat.ucla.edu/bin/linux/debian %s-cran/", // latest R versions
        "deb http://archive.cloudera.com/debian lenny-cdh3 contrib", // Hadoop
    }
    sources = append(sources, shared...)
    e.StdSources = addSourceVersions(e, sources)
}

// setupDebGeneral holds the settings shared by debian-based distributions and
// returns the source templates every debian-family target gets.
func setupDebGeneral(e *env.Env) []string {
    e.Logger().Debug("debian-shared setup")
    e.SourcesFile = "/etc/apt/sources.list.d/cloudbiolinux.list"
    e.AptPreferencesFile = "/etc/apt/preferences"
    e.PythonVersionExt = ""
    e.RubyVersionExt = "1.9.1"
    if e.JavaHome == "" {
        // TODO detect JAVA_HOME on the target instead of assuming openjdk
        e.JavaHome = defaultJavaHome
    }
    return []string{
        "deb http://nebc.nox.ac.uk/bio-linux/ unstable bio-linux", // Bio-Linux
        "deb http://download.virtualbox.org/virtualbox/debian %s contrib", // VirtualBox
    }
}
