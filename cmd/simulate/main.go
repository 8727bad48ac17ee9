// Command simulate wires the simulation driver, transport front door,
// and configuration loader into a running process.
package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/axonsim/exchange-sim/internal/book"
	"github.com/axonsim/exchange-sim/internal/config"
	"github.com/axonsim/exchange-sim/internal/event"
	"github.com/axonsim/exchange-sim/internal/logging"
	"github.com/axonsim/exchange-sim/internal/message"
	"github.com/axonsim/exchange-sim/internal/simulation"
	"github.com/axonsim/exchange-sim/internal/transport"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML/JSON simulation config file")
	addr := flag.String("addr", ":8090", "transport listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.LogPath != "" {
		logger, err = logging.NewWithFile(cfg.LogPath)
	} else {
		logger, err = logging.New()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	driverLog := logging.For(logger, logging.ComponentDriver)

	books := make(map[event.BookID]*book.Book, len(cfg.Books))
	for _, bc := range cfg.Books {
		books[event.BookID(bc.ID)] = book.New(event.BookID(bc.ID))
	}

	queue := message.NewThreadSafeQueue()
	driver := simulation.NewDriver(queue)
	factory := message.NewFactory()

	driver.RegisterHandler(message.ExchangeTarget, func(msg message.Message) {
		handleExchangeMessage(driverLog, books, msg)
	})

	transportLog := logging.For(logger, logging.ComponentTransport)
	srv := transport.New(queue, factory, transportLog)

	driverLog.Info("starting simulation driver", zap.Uint32("blockDim", cfg.Partition.BlockDim), zap.Int("books", len(books)))
	if err := driver.Start(); err != nil {
		driverLog.Fatal("failed to start driver", zap.Error(err))
	}

	go func() {
		if err := driver.Run(); err != nil {
			driverLog.Error("driver run exited with error", zap.Error(err))
		}
	}()

	if err := srv.Start(*addr); err != nil {
		logger.Fatal("transport server exited", zap.Error(err))
	}
}

func handleExchangeMessage(log *zap.Logger, books map[event.BookID]*book.Book, msg message.Message) {
	switch p := msg.Payload.(type) {
	case *message.PlaceOrderLimitPayload:
		b, ok := books[p.BookID]
		if !ok {
			log.Warn("unknown book on PlaceOrderLimit", zap.Uint32("bookId", uint32(p.BookID)))
			return
		}
		order := &event.Order{
			AgentID:       p.AgentID,
			ClientOrderID: p.ClientOrderID,
			Direction:     p.Direction,
			Price:         &p.Price,
			Volume:        p.Volume,
			Leverage:      p.Leverage,
			TimeInForce:   p.TimeInForce,
			PostOnly:      p.PostOnly,
			ExpiryPeriod:  p.ExpiryPeriod,
			STPFlag:       p.STPFlag,
		}
		if _, err := b.Place(order); err != nil {
			log.Debug("order rejected", zap.Error(err))
		}
	case *message.CancelOrdersPayload:
		b, ok := books[p.BookID]
		if !ok {
			log.Warn("unknown book on CancelOrders", zap.Uint32("bookId", uint32(p.BookID)))
			return
		}
		for _, c := range p.Cancellations {
			b.Cancel(c.ID, c.Volume)
		}
	default:
		log.Debug("unhandled exchange payload", zap.String("type", msg.Type))
	}
}
