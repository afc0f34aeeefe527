package opener

var defaultCommand = Command{Name: "open"}
