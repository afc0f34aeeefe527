package opener

var defaultCommand = Command{Name: "rundll32", Args: []string{"url.dll,FileProtocolHandler"}}
