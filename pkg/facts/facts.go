package facts

import (
    "context"
    "strings"

    "github.com/nathanhaigh/cloudbiolinux/pkg/conn"
)

// Machine returns the output of uname -m on the target.
func Machine(ctx context.Context, c conn.Conn) (string, error) {
    out, _, _, err := c.Exec(ctx, "uname -m", nil, false)
    if err != nil { return "", err }
    return strings.TrimSpace(out), nil
}

// KernelVersion reads /proc/version on the target.
func KernelVersion(ctx context.Context, c conn.Conn) (string, error) {
    out, _, _, err := c.Exec(ctx, "cat /proc/version", nil, false)
    if err != nil { return "", err }
    return out, nil
}

// Issue reads /etc/issue on the target.
func Issue(ctx context.Context, c conn.Conn) (string, error) {
    out, _, _, err := c.Exec(ctx, "cat /etc/issue", nil, false)
    if err != nil { return "", err }
    return out, nil
}
