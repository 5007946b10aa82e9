package service

import (
	"fmt"
	"strings"

	"support-agent/model"
	"support-agent/utils"
)

// Direct status questions are matched literally and answered straight from
// telemetry, before any flow or intent logic runs, so "am I on VPN?" never
// disturbs an in-progress dialogue.

var vpnStatusPatterns = []string{
	"am i on vpn",
	"am i on the vpn",
	"is the vpn connected",
	"is vpn connected",
	"is my vpn on",
	"vpn status",
	"connected to vpn",
	"connected to the vpn",
}

var onlineStatusPatterns = []string{
	"am i online",
	"am i offline",
	"am i connected to the internet",
	"is the internet up",
	"is the internet down",
	"is my internet working",
	"do i have internet",
	"internet status",
	"network status",
	"connection status",
}

var ipGatewayPatterns = []string{
	"what is my ip",
	"whats my ip",
	"what s my ip",
	"my ip address",
	"what is my gateway",
	"default gateway",
	"my public ip",
	"whats my public ip",
}

// Keywords that mark a message as a question about the machine's current
// state rather than a product issue. Kept separate from the intent pattern
// sets on purpose: this list asks "how is the machine", intents ask "which
// product is broken".
var diagnosticsKeywords = []string{
	"internet", "network", "vpn", "status", "connection", "gateway", "ip",
	"drive", "storage", "disk", "space", "cpu", "memory", "ram", "uptime",
	"antivirus", "driver", "drivers", "diagnostics", "health",
}

func matchesAnyPhrase(text string, phrases []string) bool {
	tight := utils.Tight(text)
	if tight == "" {
		return false
	}
	for _, p := range phrases {
		if strings.Contains(tight, utils.Tight(p)) {
			return true
		}
	}
	return false
}

// isDiagnosticsQuestion is the broader predicate for the full snapshot
// report. Callers must additionally check that no intent pattern scores.
func isDiagnosticsQuestion(text string) bool {
	for _, w := range utils.Tokens(text) {
		for _, k := range diagnosticsKeywords {
			if w == k {
				return true
			}
		}
	}
	return false
}

func vpnStatusAnswer(device *model.DeviceStatus, last *model.VpnStatus) string {
	var b strings.Builder

	switch {
	case device != nil && device.Network != nil && device.Network.VpnStatus != "":
		fmt.Fprintf(&b, "VPN: %s", device.Network.VpnStatus)
	case last != nil && last.Active:
		fmt.Fprintf(&b, "VPN: connected")
		if last.Name != "" {
			fmt.Fprintf(&b, " (%s)", last.Name)
		}
	case last != nil:
		b.WriteString("VPN: not connected")
	default:
		b.WriteString("VPN: not reported")
	}

	if last != nil && last.IP != "" {
		fmt.Fprintf(&b, "\nVPN IP: %s", last.IP)
	}
	if device != nil && device.Network != nil && device.Network.PublicIP != "" {
		fmt.Fprintf(&b, "\nPublic IP: %s", device.Network.PublicIP)
	}
	return b.String()
}

func onlineStatusAnswer(telemetry *model.TelemetryContext, device *model.DeviceStatus) string {
	var b strings.Builder

	if telemetry != nil && telemetry.IsOffline {
		b.WriteString("You appear to be offline right now.")
	} else {
		b.WriteString("You are online.")
	}

	if telemetry != nil && telemetry.PingState != nil && telemetry.PingState.Result != nil {
		r := telemetry.PingState.Result
		if r.AverageMs != nil {
			fmt.Fprintf(&b, "\nPing to %s: %.0f ms average", r.Target, *r.AverageMs)
		}
		if r.PacketLoss != nil && *r.PacketLoss > 0 {
			fmt.Fprintf(&b, " (%.0f%% packet loss)", *r.PacketLoss)
		}
	}
	if device != nil && device.Network != nil && device.Network.Gateway != "" {
		fmt.Fprintf(&b, "\nGateway: %s", device.Network.Gateway)
	}
	return b.String()
}

func ipGatewayAnswer(device *model.DeviceStatus) string {
	if device == nil {
		return "Network details are not available yet. Open the Troubleshoot tab and refresh diagnostics."
	}

	var b strings.Builder
	if device.System != nil && device.System.IPv4 != "" {
		fmt.Fprintf(&b, "Machine IP: %s", device.System.IPv4)
	}
	if device.Network != nil {
		if device.Network.Gateway != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "Default gateway: %s", device.Network.Gateway)
		}
		if device.Network.PublicIP != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "Public IP: %s", device.Network.PublicIP)
		}
	}
	if b.Len() == 0 {
		return "No IP details reported yet. Open the Troubleshoot tab and refresh diagnostics."
	}
	return b.String()
}

// snapshotReport renders the full device snapshot as a bulleted plain-text
// block. Missing sections degrade to "not reported" rather than failing.
func snapshotReport(device *model.DeviceStatus) string {
	if device == nil {
		return "I don't have a diagnostics snapshot yet. Open the Troubleshoot tab and refresh diagnostics, then ask me again."
	}

	var b strings.Builder
	b.WriteString("Here is what your device is reporting:\n")

	if n := device.Network; n != nil {
		fmt.Fprintf(&b, "- Internet: %s", orUnknown(n.InternetStatus))
		if n.Gateway != "" {
			fmt.Fprintf(&b, ", gateway %s", n.Gateway)
		}
		if n.PublicIP != "" {
			fmt.Fprintf(&b, ", public IP %s", n.PublicIP)
		}
		b.WriteByte('\n')
		fmt.Fprintf(&b, "- VPN: %s\n", orUnknown(n.VpnStatus))
	} else {
		b.WriteString("- Network: not reported\n")
	}

	if h := device.Health; h != nil {
		fmt.Fprintf(&b, "- CPU: %.0f%%", h.CPUUsagePercent)
		if device.System != nil && device.System.MemoryTotalGb > 0 {
			fmt.Fprintf(&b, ", RAM %.0f GB total", device.System.MemoryTotalGb)
		}
		if h.UptimeHuman != "" {
			fmt.Fprintf(&b, ", uptime %s", h.UptimeHuman)
		}
		b.WriteByte('\n')
	}

	if len(device.Antivirus) > 0 {
		av := device.Antivirus[0]
		state := "not running"
		if av.Running {
			state = "running"
		}
		fmt.Fprintf(&b, "- Antivirus: %s (%s)\n", av.Name, state)
	} else {
		b.WriteString("- Antivirus: not reported\n")
	}

	if device.Drivers != nil {
		fmt.Fprintf(&b, "- Outdated drivers: %d\n", device.Drivers.OutdatedCount)
	}

	for i, disk := range device.Storage {
		if i >= 2 {
			break
		}
		fmt.Fprintf(&b, "- Drive %s: %.0f%% used, %.1f GB free\n",
			orUnknown(disk.Mount), disk.UsedPercent(), disk.FreeGb)
	}

	b.WriteString("\nIf anything above looks wrong, submit a ticket and IT will take a look.")
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
