package distro

import (
    "strings"

    "github.com/nathanhaigh/cloudbiolinux/pkg/env"
)

// addSourceVersions fills the release name into the assembled source
// templates and logs what was substituted.
func addSourceVersions(e *env.Env, sources []string) []string {
    e.Logger().Debugf("source=%s", e.DistName)
    return substituteSourceVersions(e.DistName, sources)
}

// substituteSourceVersions replaces the version placeholder in each template
// with the release name, exactly once per template. Templates without a
// placeholder pass through unchanged; order is preserved.
func substituteSourceVersions(version string, sources []string) []string {
    final := make([]string, 0, len(sources))
    for _, s := range sources {
        if strings.Contains(s, "%s") {
            s = strings.Replace(s, "%s", version, 1)
        }
        final = append(final, s)
    }
    return final
}
