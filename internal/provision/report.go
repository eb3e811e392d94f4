package provision

import (
	"fmt"
	"io"
)

// Report carries the connection details for the freshly created credential.
// It is printed exactly once and never persisted.
type Report struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

// Print writes the fixed human-readable report block.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "==========================================================")
	fmt.Fprintln(w, " PostgreSQL + pgvector provisioning complete")
	fmt.Fprintln(w, "==========================================================")
	fmt.Fprintf(w, "  Host:     %s\n", r.Host)
	fmt.Fprintf(w, "  Port:     %d\n", r.Port)
	fmt.Fprintf(w, "  Username: %s\n", r.Username)
	fmt.Fprintf(w, "  Password: %s\n", r.Password)
	fmt.Fprintf(w, "  Database: %s\n", r.Database)
	fmt.Fprintln(w, "==========================================================")
	fmt.Fprintln(w, "  The password is displayed this one time only and is")
	fmt.Fprintln(w, "  stored nowhere. Record it now.")
	fmt.Fprintln(w, "==========================================================")
}
