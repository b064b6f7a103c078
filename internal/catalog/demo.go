package catalog

// Demo returns the built-in menu used when no catalog is configured. Heights
// vary on purpose so that paging is visible on an ordinary terminal.
func Demo() []Entry {
	entries := []Entry{
		{Label: "CPU usage", Shortcut: "c", Height: 3, Action: "cpu"},
		{Label: "Memory usage", Shortcut: "m", Height: 3, Action: "memory"},
		{Label: "Disk usage of /", Shortcut: "d", Height: 4, Action: "disk"},
		{Label: "Load average", Shortcut: "l", Height: 3, Action: "load"},
		{Label: "Uptime and platform", Shortcut: "u", Height: 5, Action: "uptime"},
		{Label: "Network traffic", Shortcut: "n", Height: 4, Action: "net"},
		{Label: "Processes", Shortcut: "p", Height: 3, Action: "processes"},
		{Label: "About simsiac", Height: 6},
		{Label: "Nothing to see here", Height: 2},
	}
	for i := range entries {
		entries[i].Position = i
	}
	return entries
}
