//go:build !windows && !darwin

package opener

var defaultCommand = Command{Name: "xdg-open"}
