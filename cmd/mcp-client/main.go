package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client <server-command> [<args>]")
		fmt.Fprintln(os.Stderr, "Example: mcp-client simsiac mcp --height 12")
		os.Exit(2)
	}

	ctx := context.Background()

	// Start the server as a subprocess
	cmd := exec.Command(args[0], args[1:]...)
	transport := &mcp.CommandTransport{Command: cmd}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "simsiac-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer session.Close()

	fmt.Println("Connected to simsiac MCP server!")
	fmt.Println("Available commands:")
	fmt.Println("  /tools                 - List available tools")
	fmt.Println("  /visible               - Show the visible items")
	fmt.Println("  /state                 - Show mode, size and window")
	fmt.Println("  /up, /down             - Scroll")
	fmt.Println("  /key <key>             - Press any key (shortcut or quit key)")
	fmt.Println("  /add <height> <label>  - Append an item")
	fmt.Println("  /resize <w> <h>        - Resize the menu")
	fmt.Println("  /mode <page|step>      - Switch scroll mode")
	fmt.Println("  /exit                  - Exit the client")
	fmt.Println()

	// Interactive REPL
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		parts := strings.Fields(input)

		switch parts[0] {
		case "/exit":
			fmt.Println("Goodbye!")
			return

		case "/tools":
			listTools(ctx, session)

		case "/visible":
			callTool(ctx, session, "visible_items", map[string]any{})

		case "/state":
			callTool(ctx, session, "menu_state", map[string]any{})

		case "/up", "/down":
			callTool(ctx, session, "press_key", map[string]any{
				"key": strings.TrimPrefix(parts[0], "/"),
			})

		case "/key":
			if len(parts) != 2 {
				fmt.Println("Usage: /key <key>")
				continue
			}
			callTool(ctx, session, "press_key", map[string]any{"key": parts[1]})

		case "/add":
			if len(parts) < 3 {
				fmt.Println("Usage: /add <height> <label>")
				continue
			}
			height, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Println("height must be a number")
				continue
			}
			callTool(ctx, session, "add_item", map[string]any{
				"height": height,
				"label":  strings.Join(parts[2:], " "),
			})

		case "/resize":
			if len(parts) != 3 {
				fmt.Println("Usage: /resize <width> <height>")
				continue
			}
			w, errW := strconv.Atoi(parts[1])
			h, errH := strconv.Atoi(parts[2])
			if errW != nil || errH != nil {
				fmt.Println("width and height must be numbers")
				continue
			}
			callTool(ctx, session, "resize", map[string]any{"width": w, "height": h})

		case "/mode":
			if len(parts) != 2 {
				fmt.Println("Usage: /mode <page|step>")
				continue
			}
			callTool(ctx, session, "set_scroll_mode", map[string]any{"mode": parts[1]})

		default:
			// A bare word is sent as a key.
			callTool(ctx, session, "press_key", map[string]any{"key": input})
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Scanner error: %v", err)
	}
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("Available Tools:")
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			log.Printf("Error listing tools: %v", err)
			return
		}
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}
	fmt.Println()
}

func callTool(ctx context.Context, session *mcp.ClientSession, toolName string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		log.Printf("Error calling tool: %v", err)
		return
	}

	printResult(result)
}

func printResult(result *mcp.CallToolResult) {
	if result.IsError {
		fmt.Printf("Error: ")
	} else {
		fmt.Printf("Result: ")
	}

	for _, content := range result.Content {
		switch v := content.(type) {
		case *mcp.TextContent:
			fmt.Println(v.Text)
		default:
			jsonData, err := json.MarshalIndent(content, "", "  ")
			if err != nil {
				fmt.Printf("%+v\n", content)
			} else {
				fmt.Println(string(jsonData))
			}
		}
	}
	fmt.Println()
}
