package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"

	"floorforge/assets"
	"floorforge/pkg/engine/input"
	"floorforge/pkg/engine/terminal"
	"floorforge/pkg/game/config"
	"floorforge/pkg/game/console"
	"floorforge/pkg/game/devtools"
	"floorforge/pkg/game/generator"
	"floorforge/pkg/game/items"
	"floorforge/pkg/game/level"
	"floorforge/pkg/game/template"
)

// loadRegistry reads the room library from path, or the built-in one
func loadRegistry(path string) (*template.Registry, error) {
	var (
		lib *template.Library
		err error
	)
	if path == "" {
		lib, err = assets.DefaultLibrary()
	} else {
		lib, err = template.Load(path)
	}
	if err != nil {
		return nil, err
	}
	return lib.Registry(), nil
}

// loadCatalog installs the message catalog for locale, falling back to en_GB
func loadCatalog(log *console.Logger, locale string) {
	po, err := assets.Catalog(locale)
	if err != nil {
		log.Warnf("no catalog for locale %s, using en_GB", locale)
		po, err = assets.Catalog("en_GB")
		if err != nil {
			log.Errorf("loading catalog: %v", err)
			return
		}
	}
	console.LoadCatalog(po)
}

// generate waits for the session's level. In interactive mode typed commands
// can reset or stop the session until the level is ready.
func generate(ctx context.Context, session *generator.Session, interactive bool, log *console.Logger) (*level.Level, error) {
	if !interactive {
		return session.Wait(ctx)
	}

	cmdCtx, stopCommands := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		cmds := input.Commands(cmdCtx, os.Stdin)
		for {
			select {
			case <-cmdCtx.Done():
				return
			case cmd, ok := <-cmds:
				if !ok {
					return
				}
				log.Infof("%v", cmd)
				switch cmd {
				case input.Reset:
					session.Reset()
				case input.Quit:
					session.Stop()
				}
			}
		}
	}()

	_, _ = session.Wait(ctx)
	stopCommands()
	<-loopDone
	// a reset may have raced the first result
	return session.Wait(ctx)
}

func run(ctx context.Context, s config.Settings, log *console.Logger) error {
	reg, err := loadRegistry(s.Library)
	if err != nil {
		return err
	}

	gen, err := generator.New(s.Generator(log), reg)
	if err != nil {
		return err
	}

	session := generator.NewSession(gen)
	session.Start(ctx)
	lvl, err := generate(ctx, session, s.Interactive, log)
	if err != nil {
		session.Stop()
		log.Errorf("%s", console.T("GENERATION_FAILED"))
		return err
	}
	defer lvl.Destroy()

	if s.Verify {
		if err := level.Verify(lvl, s.Margin); err != nil {
			log.Errorf("%s", console.T("VERIFY_FAILED"))
			return err
		}
		log.Infof("%s", console.T("VERIFY_OK"))
	}

	width := 0
	if terminal.IsTerminal(os.Stdout) {
		width = terminal.GetWidth()
	}
	devtools.WriteSummary(os.Stdout, lvl, width)

	var placed []items.Placement
	if s.Items {
		manifest := items.DefaultManifest()
		if s.Storerooms == 0 {
			manifest.Rare = nil
		}
		placed, err = items.Distribute(rand.New(rand.NewSource(gen.Seed())), lvl, manifest)
		if err != nil {
			return err
		}
		log.Infof("%s", console.T("ITEMS_PLACED", len(placed)))
	}

	if s.Dump != "" {
		path, err := devtools.DumpLevelToFile(lvl, s.Dump, devtools.DumpOptions{Items: placed})
		if err != nil {
			return err
		}
		log.Infof("%s", console.T("DUMP_WRITTEN", path))
	}
	return nil
}

func main() {
	settings, err := config.Parse(os.Args[0], os.Args[1:], os.LookupEnv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	log := console.New(os.Stderr, settings.LogLevel())
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}
	loadCatalog(log, settings.Locale)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, settings, log); err != nil {
		log.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
