package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/minaorangina/makao/game"
	"github.com/minaorangina/makao/protocol"
	"github.com/minaorangina/makao/server"
)

var errMissingPlayer = errors.New(`type "<player> <command>", e.g. "ada .join"`)

// console renders a table's messages in the terminal
type console struct {
	out     io.Writer
	public  *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

func newConsole(out io.Writer) *console {
	return &console{
		out:     out,
		public:  pterm.Info.WithPrefix(pterm.Prefix{Text: "TABLE", Style: pterm.Info.Prefix.Style}).WithWriter(out),
		warning: pterm.Warning.WithWriter(out),
		failure: pterm.Error.WithWriter(out),
	}
}

func (c *console) intro() {
	pterm.DefaultSection.WithWriter(c.out).Println("Makao")
	c.public.Println(`Each line is "<player> <command>". Try "ada .join", "bob .join", "ada .start".`)
}

// run plays lines from in against the session until in is exhausted
func (c *console) run(ctx context.Context, in io.Reader, session *game.Session) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		msg, err := parseLine(line)
		if err != nil {
			c.failure.Println(err.Error())
			continue
		}

		c.render(server.Dispatch(ctx, session, msg))
	}
	return scanner.Err()
}

func parseLine(line string) (protocol.InboundMessage, error) {
	player, command, ok := strings.Cut(line, " ")
	if !ok || strings.HasPrefix(player, ".") {
		return protocol.InboundMessage{}, errMissingPlayer
	}

	msg, err := server.ParseCommand(command)
	if err != nil {
		return protocol.InboundMessage{}, err
	}
	msg.PlayerID = player

	return msg, nil
}

func (c *console) render(msgs []protocol.OutboundMessage) {
	for _, m := range msgs {
		switch {
		case m.Event == protocol.Error:
			c.failure.Printfln("%s: %s", m.PlayerID, m.Error)
		case m.Event == protocol.Hand:
			c.renderHand(m)
		case m.Public:
			c.public.Println(m.Message)
		default:
			c.private(m.PlayerID).Println(m.Message)
		}
	}
}

func (c *console) private(player string) *pterm.PrefixPrinter {
	return pterm.Description.
		WithPrefix(pterm.Prefix{Text: strings.ToUpper(player), Style: pterm.Description.Prefix.Style}).
		WithWriter(c.out)
}

func (c *console) renderHand(m protocol.OutboundMessage) {
	c.private(m.PlayerID).Println("Your cards are:")

	playable := map[int]bool{}
	for _, slot := range m.Playable {
		playable[slot] = true
	}

	data := pterm.TableData{{"#", "Card", ""}}
	for i, card := range m.Hand {
		fits := ""
		if playable[i] {
			fits = "fits"
		}
		data = append(data, []string{strconv.Itoa(i + 1), card.Short(), fits})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(c.out).WithData(data).Render(); err != nil {
		c.warning.Println(m.Message)
	}
}
