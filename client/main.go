package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/network"
)

const usage = `commands:
  create NAME... [cpu=N] [id=GAME]
  watch GAME [PLAYER]
  leave
  roll | buy | end
  build|sell|mortgage|unmortgage TILE
  propose FROM TO [offer=1,3] [request=5] [give=100] [want=50]
  respond yes|no`

var errUsage = errors.New("unknown command")

// parseCommand turns one line of input into a packet for the server.
func parseCommand(line string) (uint16, []byte, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, nil, errUsage
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "create":
		req := network.CreateRequest{}
		for _, arg := range args {
			switch {
			case strings.HasPrefix(arg, "cpu="):
				n, err := strconv.Atoi(strings.TrimPrefix(arg, "cpu="))
				if err != nil {
					return 0, nil, fmt.Errorf("bad cpu count %q", arg)
				}
				req.CPUCount = n
			case strings.HasPrefix(arg, "id="):
				req.GameID = strings.TrimPrefix(arg, "id=")
			default:
				req.PlayerNames = append(req.PlayerNames, arg)
			}
		}
		return marshal(network.MsgTypeCreateGame, req)

	case "watch":
		if len(args) == 0 {
			return 0, nil, errors.New("watch needs a game id")
		}
		req := network.WatchRequest{GameID: args[0]}
		if len(args) > 1 {
			req.PlayerID = args[1]
		}
		return marshal(network.MsgTypeWatchGame, req)

	case "leave":
		return network.MsgTypeLeaveGame, nil, nil

	case "roll":
		return action(game.ActionRollDice, nil)
	case "buy":
		return action(game.ActionBuyProperty, nil)
	case "end":
		return action(game.ActionEndTurn, nil)

	case "build", "sell", "mortgage", "unmortgage":
		if len(args) != 1 {
			return 0, nil, fmt.Errorf("%s needs a tile index", cmd)
		}
		tile, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, nil, fmt.Errorf("bad tile index %q", args[0])
		}
		return action(game.ActionManageProperty, game.ManagePayload{TileIndex: tile, Action: game.ManageOp(cmd)})

	case "propose":
		if len(args) < 2 {
			return 0, nil, errors.New("propose needs FROM and TO player ids")
		}
		offer := game.TradeOffer{FromPlayerID: args[0], ToPlayerID: args[1]}
		for _, arg := range args[2:] {
			key, value, ok := strings.Cut(arg, "=")
			if !ok {
				return 0, nil, fmt.Errorf("bad trade term %q", arg)
			}
			var err error
			switch key {
			case "offer":
				offer.PropertiesOffered, err = parseInts(value)
			case "request":
				offer.PropertiesRequested, err = parseInts(value)
			case "give":
				offer.MoneyOffered, err = strconv.Atoi(value)
			case "want":
				offer.MoneyRequested, err = strconv.Atoi(value)
			default:
				err = fmt.Errorf("unknown trade term %q", key)
			}
			if err != nil {
				return 0, nil, err
			}
		}
		return action(game.ActionProposeTrade, offer)

	case "respond":
		if len(args) != 1 || (args[0] != "yes" && args[0] != "no") {
			return 0, nil, errors.New("respond takes yes or no")
		}
		return action(game.ActionRespondToTrade, game.RespondPayload{Accepted: args[0] == "yes"})
	}
	return 0, nil, errUsage
}

func action(name game.ActionName, payload interface{}) (uint16, []byte, error) {
	req := network.ActionRequest{Action: string(name)}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		req.Payload = data
	}
	return marshal(network.MsgTypeGameAction, req)
}

func marshal(msgID uint16, v interface{}) (uint16, []byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, nil, err
	}
	return msgID, data, nil
}

func parseInts(csv string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(csv, ",") {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad tile index %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// describe renders a server packet for the terminal.
func describe(packet *network.Packet) string {
	switch packet.MsgID {
	case network.MsgTypeGameSync:
		var g game.State
		if err := json.Unmarshal(packet.Data, &g); err != nil {
			return fmt.Sprintf("sync (undecodable): %v", err)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "game %s [%s]", g.GameID, g.Status)
		if p := g.CurrentPlayer(); p != nil {
			fmt.Fprintf(&b, " turn: %s", p.Name)
		}
		for _, p := range g.Players {
			fmt.Fprintf(&b, "\n  %-10s %-12s $%-6d @%d", p.ID, p.Name, p.Money, p.Position)
		}
		if n := len(g.GameLog); n > 0 {
			fmt.Fprintf(&b, "\n  > %s", g.GameLog[n-1])
		}
		return b.String()
	case network.MsgTypeGameEnd:
		var end network.GameEnd
		json.Unmarshal(packet.Data, &end)
		return fmt.Sprintf("game %s over, %s wins", end.GameID, end.WinnerName)
	case network.MsgTypeError:
		var msg network.ErrorMessage
		json.Unmarshal(packet.Data, &msg)
		return "error: " + msg.Error
	case network.MsgTypeHeartbeat:
		return "heartbeat"
	}
	return fmt.Sprintf("message %d: %s", packet.MsgID, packet.Data)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			packet, err := network.Decode(message)
			if err != nil {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			log.Println(describe(packet))
		}
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	log.Println(usage)

	// Write loop
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			msgID, data, err := parseCommand(line)
			if err != nil {
				log.Printf("%v\n%s", err, usage)
				continue
			}
			if err := c.WriteMessage(websocket.BinaryMessage, network.Encode(msgID, data)); err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}
}
