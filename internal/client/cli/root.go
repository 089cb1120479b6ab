package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"storyshare/internal/client/router"
)

func (a *App) getStatus(ctx context.Context) string {
	parts := []string{}
	if auth := a.session.Get(ctx); auth.Name != "" {
		parts = append(parts, auth.Name)
	}
	if a.monitor.Online() {
		parts = append(parts, "online")
	} else {
		parts = append(parts, "offline")
	}
	if n := a.storyService.PendingCount(ctx); n > 0 {
		parts = append(parts, fmt.Sprintf("%d queued", n))
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the REPL. The first navigation is always the root route, which
// the guard resolves to the login page.
func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to storyshare CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.open(ctx, "#/")

	for {
		fmt.Printf("story %s> ", a.getStatus(ctx))
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn(ctx) {
				fmt.Println("Available commands: open <route>, list [page], show <id>, add, about, bookmarks, bookmark <id>, unbookmark <id>, sync, subscribe, unsubscribe, testnotify, status, logout, exit")
			} else {
				fmt.Println("Available commands: open <route>, login, register, add (guest), about, status, exit")
			}

		case "open":
			if len(args) == 0 {
				fmt.Println("Usage: open <route>   (e.g. open /home)")
				continue
			}
			a.open(ctx, args[0])
		case "login":
			a.open(ctx, "#/login")
		case "register":
			a.open(ctx, "#/register")
		case "logout":
			a.open(ctx, "#/logout")
		case "list":
			page := 1
			if len(args) > 0 {
				if p, err := strconv.Atoi(args[0]); err == nil && p > 0 {
					page = p
				}
			}
			if page > 1 && a.isSignedIn(ctx) {
				a.list(ctx, page)
				continue
			}
			a.open(ctx, "#/home")
		case "show":
			if len(args) == 0 {
				fmt.Println("Usage: show <id>")
				continue
			}
			a.open(ctx, "#/story/"+args[0])
		case "add":
			a.addAny(ctx)
		case "about":
			a.open(ctx, "#/about")
		case "bookmarks":
			a.open(ctx, "#/bookmarks")
		case "bookmark":
			if len(args) == 0 {
				fmt.Println("Usage: bookmark <id>")
				continue
			}
			a.bookmark(ctx, args[0])
		case "unbookmark":
			if len(args) == 0 {
				fmt.Println("Usage: unbookmark <id>")
				continue
			}
			a.unbookmark(ctx, args[0])
		case "sync":
			a.sync(ctx)
		case "subscribe":
			a.subscribe(ctx)
		case "unsubscribe":
			a.unsubscribe(ctx)
		case "testnotify":
			a.testNotify(ctx)
		case "status":
			a.status(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}

// open evaluates the route guard for hash and either renders the matching
// page or follows the redirect. A redirect triggers exactly one further
// evaluation, so the loop is bounded.
func (a *App) open(ctx context.Context, hash string) {
	for i := 0; i < 3; i++ {
		route := router.ParseHash(hash)
		decision := router.Guard(route, a.isSignedIn(ctx))

		if decision.ClearSession {
			if err := a.session.Clear(ctx); err != nil {
				a.log.Warn(ctx, "session clear failed", "error", err)
			}
			fmt.Println("Signed out.")
		}
		if decision.Action == router.Redirect {
			hash = "#" + decision.Target
			continue
		}

		a.currentHash = hash
		a.render(ctx, route)
		return
	}
	a.log.Warn(ctx, "navigation did not settle", "hash", hash)
}

// render mounts the page for the route. A panic inside a page handler is
// the catastrophic case: show the generic panel, never crash the REPL.
func (a *App) render(ctx context.Context, route router.Route) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error(ctx, "page render failed", "route", route.Pattern(), "panic", r)
			fmt.Println("Something went wrong. Please try again.")
		}
	}()

	switch route.Pattern() {
	case "/login":
		_ = a.Login(ctx)
	case "/register":
		_ = a.Register(ctx)
	case "/home":
		a.list(ctx, 1)
	case "/add":
		a.add(ctx)
	case "/bookmarks":
		a.listBookmarks(ctx)
	case "/story/:id":
		a.show(ctx, route.ID)
	case "/about":
		a.about()
	case "/404":
		fmt.Println("Page not found. Try: open /home, open /about, open /bookmarks")
	}
}

func (a *App) about() {
	fmt.Println("storyshare — share stories, experiences and moments with the community.")
	fmt.Println("Stories can carry a photo and a location, are cached for offline reading,")
	fmt.Println("and anything you share while offline is queued and synced automatically.")
}

func (a *App) status(ctx context.Context) {
	auth := a.session.Get(ctx)
	if auth.Name != "" {
		fmt.Printf("Signed in as %s\n", auth.Name)
	} else {
		fmt.Println("Not signed in")
	}
	if a.monitor.Online() {
		fmt.Println("Connectivity: online")
	} else {
		fmt.Println("Connectivity: offline")
	}
	fmt.Printf("Pending submissions: %d\n", a.storyService.PendingCount(ctx))
	if last := a.coordinator.LastSync(ctx); !last.IsZero() {
		fmt.Printf("Last sync: %s\n", last.Format("2006-01-02 15:04"))
	}
	if a.notifService.Subscribed(ctx) {
		fmt.Println("Notifications: subscribed")
	} else {
		fmt.Println("Notifications: not subscribed")
	}
}
