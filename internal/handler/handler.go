package handler

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"lynxbot/internal/command"
	"lynxbot/internal/config"
	"lynxbot/internal/database"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
)

type EventHandler struct {
	Config    *config.ConfigScheme
	Client    *whatsmeow.Client
	Container *sqlstore.Container
	UserDB    *database.DBInstance
	Log       *zerolog.Logger
	WaLogger  waLog.Logger

	dispatcher        *command.Dispatcher
	cooldowns         *command.CooldownTracker
	pairedChannel     []chan<- error
	authChannel       []chan<- struct{}
	logoutChannel     []chan<- struct{}
	receivedOldEvents atomic.Bool
	wg                sync.WaitGroup
	groupInfoCache    map[string]*cacheEntry
	groupCacheMutex   sync.Mutex
	stop              chan struct{}
}

type EventHandlerOptions struct {
	Config    *config.ConfigScheme
	Client    *whatsmeow.Client
	Container *sqlstore.Container
	UserDB    *database.DBInstance
	Registry  *command.Registry
	Logger    *zerolog.Logger
	WaLogger  waLog.Logger
}

func NewEventHandler(opts EventHandlerOptions) *EventHandler {
	evt := &EventHandler{
		Config:    opts.Config,
		Client:    opts.Client,
		Container: opts.Container,
		UserDB:    opts.UserDB,
		Log:       opts.Logger,
		WaLogger:  opts.WaLogger,

		cooldowns:      command.NewCooldownTracker(),
		groupInfoCache: make(map[string]*cacheEntry),
		stop:           make(chan struct{}),
	}
	evt.dispatcher = &command.Dispatcher{
		Registry:  opts.Registry,
		Gates:     &command.Gatekeeper{Groups: evt},
		Cooldowns: evt.cooldowns,
		Flood:     command.NewFloodGate(opts.Config.FloodRate, opts.Config.FloodBurst),
		Replier:   command.WAReplier{},
		Log:       opts.Logger,
	}
	evt.receivedOldEvents.Store(true)
	opts.Client.AddEventHandler(evt.handleEvent)
	go evt.cooldownJanitor()
	return evt
}

// cooldownJanitor bounds tracker memory: entries are only ever overwritten
// by dispatches, so stale keys must be swept out of band.
func (i *EventHandler) cooldownJanitor() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			i.cooldowns.Prune(time.Hour, time.Now())
		case <-i.stop:
			return
		}
	}
}

// Stop terminates background work. Call after Disconnect.
func (i *EventHandler) Stop() {
	close(i.stop)
	i.wg.Wait()
}

func (i *EventHandler) handleEvent(evt any) {
	switch event := evt.(type) {
	case *events.Message:
		i.wg.Add(1)
		go func(event *events.Message) {
			i.handleMessage(event)
			i.wg.Done()
		}(event)
	case *events.GroupInfo:
		go i.handleGroupInfoChange(event)
	case *events.CallOffer:
		if err := i.Client.RejectCall(event.From, event.CallID); err != nil {
			log.Error().Err(err).Msg("Error rejecting call")
		}
	case *events.OfflineSyncPreview:
		i.receivedOldEvents.Store(false)
		log.Info().
			Str("AppDataChanges", strconv.Itoa(event.AppDataChanges)).
			Str("Messages", strconv.Itoa(event.Messages)).
			Str("Notifications", strconv.Itoa(event.Notifications)).
			Str("Receipts", strconv.Itoa(event.Receipts)).
			Msg("Receiving old events")
	case *events.OfflineSyncCompleted:
		i.wg.Wait()
		if !i.receivedOldEvents.Swap(true) {
			log.Info().Msg("All old events received")
		}
	case *events.Connected:
		for _, ch := range i.authChannel {
			ch <- struct{}{}
			close(ch)
		}
		clear(i.authChannel)
	case *events.PairSuccess:
		for _, ch := range i.pairedChannel {
			ch <- nil
			close(ch)
		}
		clear(i.pairedChannel)
	case *events.PairError:
		for _, ch := range i.pairedChannel {
			ch <- event.Error
			close(ch)
		}
		clear(i.pairedChannel)
	case *events.LoggedOut:
		for _, ch := range i.logoutChannel {
			ch <- struct{}{}
			close(ch)
		}
		clear(i.logoutChannel)
	}
}
