// Package discord forwards dropped files to a Discord channel.
package discord

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gioui.org/f32"
	"github.com/bwmarrin/discordgo"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// Sender is the part of a discordgo session the sink needs.
type Sender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NewSession returns a bot session for token. The sink only uses the REST
// API, so the session is never opened.
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("discord token is empty")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return s, nil
}

// Sink is a drop target that uploads what is dropped on it.
type Sink struct {
	sender    Sender
	channelID string
	resolver  *transfer.Resolver
	accept    []string
	maxFiles  int
	log       *slog.Logger

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// Option configures a Sink.
type Option func(*Sink)

// WithAccept limits the sink to MIME patterns such as "image/*".
func WithAccept(patterns ...string) Option {
	return func(s *Sink) { s.accept = patterns }
}

// WithMaxFiles rejects drops carrying more than n locators. Zero means no limit.
func WithMaxFiles(n int) Option {
	return func(s *Sink) { s.maxFiles = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sink) { s.log = l }
}

// NewSink returns a sink posting to channelID.
func NewSink(sender Sender, channelID string, resolver *transfer.Resolver, opts ...Option) *Sink {
	s := &Sink{
		sender:    sender,
		channelID: channelID,
		resolver:  resolver,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) Started(mimeTypes []string, _ f32.Point) bool {
	return transfer.MatchAny(s.accept, mimeTypes)
}

func (s *Sink) Entered()        {}
func (s *Sink) Moved(f32.Point) {}
func (s *Sink) Exited()         {}
func (s *Sink) Ended()          {}

// Dropped queues an upload of the accepted locators and returns without
// waiting for it. Local files are attached; remote locators are linked in
// the message text.
func (s *Sink) Dropped(locators []transfer.Locator, _ f32.Point) bool {
	if s.maxFiles > 0 && len(locators) > s.maxFiles {
		s.log.Info("Drop rejected", slog.Int("locators", len(locators)), slog.Int("maxFiles", s.maxFiles))
		return false
	}

	var files []transfer.FileDesc
	var links []string
	for _, loc := range locators {
		if local, ok := localFile(loc); ok {
			desc, err := s.resolver.Describe(local)
			if err != nil {
				s.log.Warn("Skipping file", slog.String("path", loc.Path()), slog.String("error", err.Error()))
				continue
			}
			if transfer.MatchAny(s.accept, []string{desc.MimeType}) {
				files = append(files, desc)
			}
			continue
		}
		mt, err := s.resolver.MimeType(loc)
		if err != nil {
			s.log.Warn("Skipping locator", slog.String("path", loc.Path()), slog.String("error", err.Error()))
			continue
		}
		if transfer.MatchAny(s.accept, []string{mt}) {
			links = append(links, loc.Path())
		}
	}
	if len(files) == 0 && len(links) == 0 {
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.send(files, links); err != nil {
			s.log.Error("Unable to upload drop", slog.String("channel", s.channelID), slog.String("error", err.Error()))
			s.mu.Lock()
			s.errs = append(s.errs, err)
			s.mu.Unlock()
		}
	}()
	return true
}

// localFile returns loc as a local locator. Records decoded from an in-app
// drag carry a plain path, so an absolute path naming an existing file is
// treated as local too.
func localFile(loc transfer.Locator) (transfer.LocalLocator, bool) {
	if local, ok := loc.(transfer.LocalLocator); ok {
		return local, true
	}
	path := loc.Path()
	if !filepath.IsAbs(path) {
		return nil, false
	}
	if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
		return nil, false
	}
	return transfer.NewFileLocator(path), true
}

func (s *Sink) send(files []transfer.FileDesc, links []string) error {
	msg := &discordgo.MessageSend{Content: strings.Join(links, "\n")}
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	for _, f := range files {
		r, err := s.resolver.Open(transfer.NewFileLocator(f.Path))
		if err != nil {
			return err
		}
		closers = append(closers, r)
		msg.Files = append(msg.Files, &discordgo.File{
			Name:        f.Name,
			ContentType: f.MimeType,
			Reader:      r,
		})
	}
	if _, err := s.sender.ChannelMessageSendComplex(s.channelID, msg); err != nil {
		return fmt.Errorf("send to channel %s: %w", s.channelID, err)
	}
	s.log.Info("Uploaded drop", slog.String("channel", s.channelID), slog.Int("files", len(files)), slog.Int("links", len(links)))
	return nil
}

// Wait blocks until queued uploads finish and returns their errors.
func (s *Sink) Wait() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.errs...)
}
