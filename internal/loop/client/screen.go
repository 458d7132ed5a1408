package client

import (
	"fmt"
	"time"

	"github.com/tomz197/dodgefall/internal/draw"
	"github.com/tomz197/dodgefall/internal/loop"
	"github.com/tomz197/dodgefall/internal/loop/config"
	"github.com/tomz197/dodgefall/internal/loop/server"
)

var titleArt = []string{
	`  ___    ___   ___    ___  ___  ___    _    _     _     `,
	` |   \  / _ \ |   \  / __|| __|| __|  /_\  | |   | |    `,
	` | |) || (_) || |) || (_ || _| | _|  / _ \ | |__ | |__  `,
	` |___/  \___/ |___/  \___||___||_|  /_/ \_\|____||____| `,
	`                                                        `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	`                                              `,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snap := c.game.Snapshot()

	// On phase, banner or overlay transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	st := c.state
	hasLeader := st.leaderText != ""
	if snap.Phase != st.prevPhase || snap.ShowGameOver != st.prevGameOver ||
		st.isInactive != st.wasInactive || st.ShuttingDown != st.wasShutdown ||
		hasLeader != st.hadLeaderText {
		c.screen.Clear()
		st.prevPhase = snap.Phase
		st.prevGameOver = snap.ShowGameOver
		st.wasInactive = st.isInactive
		st.wasShutdown = st.ShuttingDown
		st.hadLeaderText = hasLeader
	}

	c.canvas.Clear()
	c.drawField(snap)

	// Render canvas to terminal
	c.canvas.Render(c.screen)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.screen)

	// Draw UI overlay
	c.drawUI(snap, c.server.GetSnapshot())

	return c.screen.Flush()
}

// drawField paints the background pixels, the obstacle and the player.
func (c *Client) drawField(snap loop.Snapshot) {
	for _, p := range snap.Pixels {
		c.canvas.SetFloat(p.X, p.Y, draw.ColorGray)
	}
	if snap.ObstacleVisible {
		c.canvas.FillRect(snap.Obstacle, draw.ColorRed)
	}
	player := draw.ColorCyan
	if snap.ModifierHeld {
		player = draw.ColorYellow
	}
	c.canvas.FillRect(snap.Player, player)
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snap loop.Snapshot, lobby *server.LobbySnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.ShuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(termWidth, termHeight, snap, lobby)

	switch {
	case snap.ShowStart:
		c.drawStartScreen(centerX, centerY)
	case snap.ShowGameOver:
		c.drawGameOverScreen(centerX, centerY, snap)
	}

	if c.state.leaderText != "" {
		c.screen.Colored(centerX-len(c.state.leaderText)/2, 3, draw.ColorYellow, c.state.leaderText)
	}
}

// drawHUD draws the always-on overlay.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth, termHeight int, snap loop.Snapshot, lobby *server.LobbySnapshot) {
	if snap.ScoreVisible {
		c.screen.Text(2, 1, fmt.Sprintf("Score: %-8d", snap.Score))
	}

	highText := fmt.Sprintf("Highest Score: %-8d", snap.HighScore)
	c.screen.Text(termWidth-len(highText)-1, 1, highText)

	soundText := fmt.Sprintf("[M] %-6s  [+/-] Volume: %3d%%", snap.MuteLabel, int(snap.Volume*100+0.5))
	c.screen.Text(2, termHeight, soundText)

	if lobby == nil {
		return
	}
	playersText := fmt.Sprintf("Players: %-4d", lobby.Players)
	c.screen.Text(termWidth-len(playersText)-1, termHeight, playersText)

	// Leaderboard only while idle, so it never covers the falling obstacle.
	if snap.Phase == loop.PhaseRunning || len(lobby.Top) == 0 {
		return
	}
	const boardWidth = 24
	col := termWidth - boardWidth - 1
	c.screen.Text(col, 3, fmt.Sprintf("%-*s", boardWidth, "Top scores"))
	for i, e := range lobby.Top {
		line := fmt.Sprintf("%d. %-*s %6d", i+1, config.MaxUsernameLength, e.Name, e.Score)
		c.screen.Text(col, 4+i, line)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleWidth := artWidth(titleArt)
	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.screen.Text(centerX-titleWidth/2, titleStartY+i, line)
	}

	c.screen.Centered(centerX, titleStartY+len(titleArt)+1, "~ Dodge the falling block ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.screen.Centered(centerX, controlsY, "Controls")

	controlLines := []string{
		"A D / < >  . . . .  Move",
		"SHIFT + move  . .  Boost",
		"M  . . . . . . . .  Mute",
		"+ -  . . . . . .  Volume",
		"Q  . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.screen.Centered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.screen.Centered(centerX, controlsY+len(controlLines)+2, ">>  Press any key to Start  <<")
	} else {
		c.screen.Erase(1, controlsY+len(controlLines)+2, c.canvas.TerminalWidth())
	}

	// GitHub link (OSC 8 clickable hyperlink)
	c.screen.Link(centerX, controlsY+len(controlLines)+4, "https://github.com/tomz197/dodgefall", "github.com/tomz197/dodgefall")
}

// drawGameOverScreen draws the banner shown after a collision.
func (c *Client) drawGameOverScreen(centerX, centerY int, snap loop.Snapshot) {
	titleWidth := artWidth(gameOverArt)
	titleStartY := centerY - 6
	for i, line := range gameOverArt {
		c.screen.Colored(centerX-titleWidth/2, titleStartY+i, draw.ColorRed, line)
	}

	c.screen.Centered(centerX, titleStartY+len(gameOverArt)+1, fmt.Sprintf("Score: %d", snap.Score))
	if snap.Score > 0 && snap.Score >= snap.HighScore {
		c.screen.Colored(centerX-len("New high score!")/2, titleStartY+len(gameOverArt)+2, draw.ColorYellow, "New high score!")
	}

	prompt := ">>  Press any key to play again  <<"
	if time.Now().UnixMilli()/600%2 == 0 {
		c.screen.Centered(centerX, titleStartY+len(gameOverArt)+4, prompt)
	} else {
		c.screen.Erase(centerX-len(prompt)/2, titleStartY+len(gameOverArt)+4, len(prompt))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.screen.Centered(centerX, centerY-2, "INACTIVITY WARNING")

	remaining := int((c.idleDisconnect - c.now().Sub(c.lastInput)).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %3d seconds.", remaining)
	c.screen.Centered(centerX, centerY, msg)

	c.screen.Centered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.screen.Centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.screen.Centered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.screen.Centered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.screen.Centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))

	c.screen.Centered(centerX, centerY+4, "Press Q to disconnect now")
}

func artWidth(art []string) int {
	width := 0
	for _, line := range art {
		if len(line) > width {
			width = len(line)
		}
	}
	return width
}
