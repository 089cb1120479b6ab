package cli

import (
	"context"
	"fmt"
)

func (a *App) subscribe(ctx context.Context) {
	res := a.notifService.Subscribe(ctx)
	fmt.Println(res.Message)
}

func (a *App) unsubscribe(ctx context.Context) {
	res := a.notifService.Unsubscribe(ctx)
	fmt.Println(res.Message)
}

func (a *App) testNotify(ctx context.Context) {
	res := a.notifService.Test(ctx)
	fmt.Println(res.Message)
}

func (a *App) sync(ctx context.Context) {
	if !a.monitor.Online() {
		fmt.Println("You are offline; sync will run automatically once you are back online.")
		return
	}
	if err := a.coordinator.Run(ctx); err != nil {
		a.log.Error(ctx, "sync failed", "error", err)
		fmt.Println("Sync failed. Your queued stories are kept.")
		return
	}
	fmt.Printf("Sync done. Pending submissions: %d\n", a.storyService.PendingCount(ctx))
}
