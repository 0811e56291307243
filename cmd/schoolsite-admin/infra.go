package main

import (
	"fmt"
	"io"

	redisadapter "github.com/target/schoolsite-ui/internal/adapters/redis"
	"github.com/target/schoolsite-ui/internal/bootstrap"
)

// openSessionStore connects to Redis and returns the session store with a close func.
func openSessionStore(cmdCtx *commandContext) (*redisadapter.SessionStore, func(), error) {
	client, err := bootstrap.ConnectRedis(bootstrap.RedisConnectConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	closeFn := func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}
	return redisadapter.NewSessionStoreWithPrefix(client, cmdCtx.Config.Session.KeyPrefix), closeFn, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
