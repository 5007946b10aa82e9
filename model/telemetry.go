package model

// Telemetry snapshot types. All of this is collected elsewhere in the desktop
// agent (OS probes) and handed to the engine as read-only data; the engine
// never mutates or refreshes it.

type NetworkStatus struct {
	InternetStatus string `json:"internet_status,omitempty"`
	VpnStatus      string `json:"vpn_status,omitempty"`
	Gateway        string `json:"gateway,omitempty"`
	PublicIP       string `json:"public_ip,omitempty"`
}

type SystemIdentity struct {
	Hostname      string  `json:"hostname,omitempty"`
	IPv4          string  `json:"ipv4,omitempty"`
	Domain        string  `json:"domain,omitempty"`
	MemoryTotalGb float64 `json:"memory_total_gb,omitempty"`
	CPUBrand      string  `json:"cpu_brand,omitempty"`
}

type HealthStatus struct {
	UptimeHuman     string  `json:"uptime_human,omitempty"`
	CPUUsagePercent float64 `json:"cpu_usage_percent,omitempty"`
}

type AvItem struct {
	Name     string `json:"name"`
	Running  bool   `json:"running"`
	LastScan string `json:"last_scan,omitempty"`
}

type DriverStatus struct {
	OutdatedCount int `json:"outdated_count"`
}

type DiskSnapshot struct {
	Name    string  `json:"name,omitempty"`
	Mount   string  `json:"mount"`
	TotalGb float64 `json:"total_gb"`
	FreeGb  float64 `json:"free_gb"`
}

// UsedPercent derives disk usage from the total/free pair the probe reports.
func (d DiskSnapshot) UsedPercent() float64 {
	if d.TotalGb <= 0 {
		return 0
	}
	return (d.TotalGb - d.FreeGb) / d.TotalGb * 100
}

// DeviceStatus is the aggregated snapshot the host app assembles from its OS
// probes. Any section may be missing; formatters substitute placeholders.
type DeviceStatus struct {
	Network   *NetworkStatus  `json:"network,omitempty"`
	System    *SystemIdentity `json:"system,omitempty"`
	Health    *HealthStatus   `json:"health,omitempty"`
	Antivirus []AvItem        `json:"antivirus,omitempty"`
	Drivers   *DriverStatus   `json:"drivers,omitempty"`
	Storage   []DiskSnapshot  `json:"storage,omitempty"`
}

type PingResult struct {
	Success    bool     `json:"success"`
	Attempts   int      `json:"attempts"`
	Responses  int      `json:"responses"`
	PacketLoss *float64 `json:"packet_loss,omitempty"`
	AverageMs  *float64 `json:"average_ms,omitempty"`
	Target     string   `json:"target"`
}

type PingState struct {
	Status string      `json:"status"`
	Result *PingResult `json:"result,omitempty"`
}

type VpnStatus struct {
	Active    bool   `json:"active"`
	Name      string `json:"name,omitempty"`
	IP        string `json:"ip,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type PrinterInfo struct {
	Name   string `json:"name"`
	IP     string `json:"ip,omitempty"`
	Status string `json:"status,omitempty"`
}

// TelemetryContext carries the live probe results the desktop agent already
// holds when it sends a chat message.
type TelemetryContext struct {
	IsOffline      bool           `json:"is_offline"`
	PingState      *PingState     `json:"ping_state,omitempty"`
	Printers       []PrinterInfo  `json:"printers,omitempty"`
	LastVpnResult  *VpnStatus     `json:"last_vpn_result,omitempty"`
	AntivirusItems []AvItem       `json:"antivirus_items,omitempty"`
	SystemMetrics  *SystemMetrics `json:"system_metrics,omitempty"`
}

type SystemMetrics struct {
	UptimeHuman     string  `json:"uptime_human,omitempty"`
	CPUUsagePercent float64 `json:"cpu_usage_percent,omitempty"`
	MemoryUsedGb    float64 `json:"memory_used_gb,omitempty"`
	MemoryTotalGb   float64 `json:"memory_total_gb,omitempty"`
	DefaultGateway  string  `json:"default_gateway,omitempty"`
	PublicIP        string  `json:"public_ip,omitempty"`
}
