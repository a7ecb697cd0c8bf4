package sources

import (
    "context"
    "errors"
    "fmt"

    "github.com/nathanhaigh/cloudbiolinux/pkg/env"
)

// Write appends the assembled package-source lines to the sources file on the
// target, in order, skipping lines already present. RPM-family targets have
// no sources file and are a no-op.
func Write(ctx context.Context, e *env.Env) error {
    if e.SourcesFile == "" {
        e.Logger().Debug("no sources file for this distribution, skipping")
        return nil
    }
    if e.SafeExec == nil {
        return errors.New("sources: environment has no bound executor")
    }
    for _, line := range e.StdSources {
        cmd := fmt.Sprintf("grep -qxF %q %s 2>/dev/null || echo %q >> %s",
            line, e.SourcesFile, line, e.SourcesFile)
        if _, err := e.SafeExec(ctx, cmd); err != nil {
            return err
        }
    }
    e.Logger().Infof("wrote %d source lines to %s", len(e.StdSources), e.SourcesFile)
    return nil
}
