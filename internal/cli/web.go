package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"datewheel/internal/debuglog"
	"datewheel/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the interactive picker in your browser (PTY + WebSocket)",
		Long: strings.TrimSpace(`
Run the interactive host over the web via a server-side PTY and a browser
terminal emulator. Each browser tab starts its own datewheel subprocess.

There is no authentication: bind to localhost unless you trust the network.
`),
		Example: strings.TrimSpace(`
datewheel web
datewheel web --addr :3334 --locale ja
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = app.cfg.Web.Addr
			}
			log := debuglog.FromContext(cmd.Context())

			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:       strings.TrimSpace(addr),
				Locale:     app.Locale,
				ConfigPath: app.ConfigPath,
				Logger:     log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			listenAddr := srv.Addr()

			_ = writeOut(cmd, app, map[string]any{
				"addr":      listenAddr,
				"url":       "http://" + listenAddr + "/terminal",
				"locale":    app.Locale,
				"startedAt": app.now().UTC().Format(time.RFC3339Nano),
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "datewheel web running at http://%s (locale=%s)\n", listenAddr, app.Locale)

			hs := &http.Server{Addr: listenAddr, Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = hs.Shutdown(shutdown)
			}()
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3334", "Bind address (host:port or :port)")
	return cmd
}
