package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/mj1618/desktop-dnd/internal/dnd"
	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/platform"
	"github.com/mj1618/desktop-dnd/internal/platform/script"
	"github.com/mj1618/desktop-dnd/internal/sink/discord"
	"github.com/mj1618/desktop-dnd/internal/transfer"

	// Registers the clipboard host with platform.NewHost.
	_ "github.com/mj1618/desktop-dnd/internal/platform/clipboard"
)

// discordSinks builds Discord drop sinks on demand, sharing one session.
type discordSinks struct {
	token     string
	channelID string
	resolver  *transfer.Resolver
	log       *slog.Logger

	mu      sync.Mutex
	session *discordgo.Session
	sinks   []*discord.Sink
}

func (d *discordSinks) factory(region string, spec model.TargetSpec) (dnd.DropTarget, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.channelID == "" {
		return nil, errors.New("discord.channelId is not configured")
	}
	if d.session == nil {
		s, err := discord.NewSession(d.token)
		if err != nil {
			return nil, err
		}
		d.session = s
	}
	s := discord.NewSink(d.session, d.channelID, d.resolver,
		discord.WithAccept(spec.Accept...),
		discord.WithMaxFiles(spec.MaxFiles),
		discord.WithLogger(d.log.With(slog.String("region", region))),
	)
	d.sinks = append(d.sinks, s)
	return s, nil
}

// wait blocks until every sink has finished uploading.
func (d *discordSinks) wait() error {
	d.mu.Lock()
	sinks := d.sinks
	d.mu.Unlock()
	var errs []error
	for _, s := range sinks {
		errs = append(errs, s.Wait())
	}
	return errors.Join(errs...)
}

// newRunner wires a replay runner from the loaded config. The returned
// sinks must be waited on before exiting.
func newRunner() (*script.Runner, *discordSinks, error) {
	log := slog.Default()
	codec := transfer.NewCodec(transfer.NewResolver(), log)
	sinks := &discordSinks{
		token:     cfg.Discord.Token,
		channelID: cfg.Discord.ChannelID,
		resolver:  codec.Resolver(),
		log:       log,
	}
	r := &script.Runner{
		Builder: script.Builder{
			Sinks: map[string]script.SinkFactory{"discord": sinks.factory},
			Log:   log,
		},
		Codec:   codec,
		Density: cfg.Density,
		MaxEdge: cfg.Preview.MaxEdge,
		Log:     log,
	}
	// The script host is created per run so replays stay independent.
	if cfg.Host != "script" {
		host, err := platform.NewHost(cfg.Host)
		if err != nil {
			return nil, nil, err
		}
		r.Host = host
	}
	return r, sinks, nil
}

// readInput reads the named file, or stdin for "-" or no name.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
