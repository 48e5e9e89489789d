package handlers

import (
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/hub"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get
	"p": 2, // press <index> <button>
	"r": 2, // release <index> <button>
	"l": 0, // leave
	"n": 0, // new game
	"d": 1, // difficulty <level|WxH/M>
	"f": 0, // forfeit
}

type command struct {
	name  string
	apply func(s *mines.Session) (bool, error)
}

func pointerCommand(args []string, action func(s *mines.Session, i int, b mines.Button) bool) func(*mines.Session) (bool, error) {
	index, err := strconv.Atoi(args[0])
	return func(s *mines.Session) (bool, error) {
		if err != nil {
			return false, errors.New("first argument must be an int")
		}
		if index < 0 || index >= s.Dimensions().Cells() {
			return false, ErrCellOutOfBoard
		}
		return action(s, index, mines.ParseButton(args[1])), nil
	}
}

func parseCommand(c string) (command, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return command{}, errors.New("empty command")
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return command{}, errors.New("invalid number of arguments")
	}

	cmd := command{name: parts[0]}
	switch parts[0] {
	case "g":
		cmd.apply = func(*mines.Session) (bool, error) { return false, nil }
	case "p":
		cmd.apply = pointerCommand(parts[1:], (*mines.Session).Press)
	case "r":
		cmd.apply = pointerCommand(parts[1:], (*mines.Session).Release)
	case "l":
		cmd.apply = func(s *mines.Session) (bool, error) { return s.Leave(), nil }
	case "n":
		cmd.apply = func(s *mines.Session) (bool, error) {
			s.Reset()
			return true, nil
		}
	case "d":
		difficulty, err := mines.ParseDifficulty(parts[1])
		if err != nil {
			return command{}, err
		}
		cmd.apply = func(s *mines.Session) (bool, error) {
			s.SetDifficulty(difficulty)
			return true, nil
		}
	case "f":
		cmd.apply = func(s *mines.Session) (bool, error) { return s.Forfeit(), nil }
	}
	return cmd, nil
}

/*
 * ConnectWS streams the game over a websocket. Text frames carry one
 * command per line; the server pushes the game view after every change
 * and every clock tick, and answers "g" with the current view.
 */
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	updates, cancel, err := g.hub.Subscribe(id)
	if errors.Is(err, hub.ErrNotFound) {
		sendError(w, g.log, http.StatusNotFound, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer cancel()

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithFields(logrus.Fields{"id": id, "remote": r.RemoteAddr})
	log.Debug("websocket connected")

	replies := make(chan any, 4)
	done := make(chan struct{})
	go g.writeWS(c, log, id, updates, replies, done)
	defer close(done)

	c.SetReadLimit(g.ws.ReadLimit)
	c.SetReadDeadline(time.Now().Add(g.ws.PongTimeout))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(g.ws.PongTimeout))
	})

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		c.SetReadDeadline(time.Now().Add(g.ws.PongTimeout))

		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)
		for _, line := range iterBySep(text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			reply, ok := g.executeWS(id, line)
			if reply == nil {
				continue
			}
			select {
			case replies <- reply:
			default:
				log.Warn("dropping reply to slow client")
			}
			if !ok {
				break
			}
		}
	}
}

/*
 * executeWS runs one command line. It returns a message for the client
 * (nil when the pushed update is answer enough) and false when the rest
 * of the frame should be skipped.
 */
func (g GameHandler) executeWS(id, line string) (any, bool) {
	cmd, err := parseCommand(line)
	if err != nil {
		return wrapError(err), false
	}
	var cmdErr error
	view, err := g.hub.Do(id, func(s *mines.Session) bool {
		changed, err := cmd.apply(s)
		cmdErr = err
		return changed
	})
	switch {
	case err != nil:
		return wrapError(err), false
	case cmdErr != nil:
		return wrapError(cmdErr), false
	case cmd.name == "g":
		return NewGameDTO(id, view), true
	default:
		return nil, true
	}
}

func (g GameHandler) writeWS(
	c *websocket.Conn,
	log *logrus.Entry,
	id string,
	updates <-chan mines.SessionView,
	replies <-chan any,
	done <-chan struct{},
) {
	ping := time.NewTicker(g.ws.PingPeriod())
	defer ping.Stop()
	/* unblocks the reader once the client stops listening */
	defer c.Close()

	write := func(v any) bool {
		c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		if err := c.WriteJSON(v); err != nil {
			log.WithError(err).Debug("unable to write json")
			return false
		}
		return true
	}

	for {
		select {
		case <-done:
			return
		case view := <-updates:
			if !write(NewGameDTO(id, view)) {
				return
			}
		case reply := <-replies:
			if !write(reply) {
				return
			}
		case <-ping.C:
			c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
