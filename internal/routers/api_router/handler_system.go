package api_router

import (
	"os"
	"runtime"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/app"
	pkgapp "github.com/haierkeys/sheet-memo-dashboard/pkg/app"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// SystemHandler 系统信息 API 路由处理器
type SystemHandler struct {
	*Handler
}

// NewSystemHandler 创建 SystemHandler 实例
func NewSystemHandler(a *app.App) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(a),
	}
}

// SystemInfo system information response structure
// SystemInfo 系统信息响应结构
type SystemInfo struct {
	StartTime     time.Time   `json:"startTime"`     // Start time // 启动时间
	Uptime        float64     `json:"uptime"`        // Uptime (seconds) // 运行时间（秒）
	RuntimeStatus RuntimeInfo `json:"runtimeStatus"` // Go runtime status // Go 运行时状态
	CPU           CPUInfo     `json:"cpu"`           // CPU information // CPU 信息
	Memory        MemoryInfo  `json:"memory"`        // Memory information // 内存信息
	Host          HostInfo    `json:"host"`          // Host information // 主机信息
	Process       ProcessInfo `json:"process"`       // Process information // 进程信息
}

// CPUInfo CPU information
// CPUInfo CPU 信息
type CPUInfo struct {
	ModelName     string    `json:"modelName"`     // Model name // 型号
	PhysicalCores int       `json:"physicalCores"` // Physical cores // 物理核心数
	LogicalCores  int       `json:"logicalCores"`  // Logical cores // 逻辑核心数
	Percent       []float64 `json:"percent"`       // Usage percentage per core // 每个核心的使用率
	LoadAvg       *LoadInfo `json:"loadAvg"`       // Load average // 平均负载
}

// LoadInfo system load information
type LoadInfo struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// MemoryInfo memory information
type MemoryInfo struct {
	Total           uint64  `json:"total"`           // Total physical memory // 系统总内存
	Available       uint64  `json:"available"`       // Available memory // 可用内存
	Used            uint64  `json:"used"`            // Used memory // 已用内存
	UsedPercent     float64 `json:"usedPercent"`     // Memory usage percentage // 内存使用率
	SwapTotal       uint64  `json:"swapTotal"`       // Total swap space // 交换区总量
	SwapUsed        uint64  `json:"swapUsed"`        // Used swap space // 交换区已用
	SwapUsedPercent float64 `json:"swapUsedPercent"` // Swap usage percentage // 交换区使用率
}

// HostInfo host identification information
type HostInfo struct {
	Hostname      string    `json:"hostname"`      // Hostname // 主机名
	OS            string    `json:"os"`            // Operating system // 操作系统
	OSPretty      string    `json:"osPretty"`      // Detailed OS name // 详细操作系统名称
	Platform      string    `json:"platform"`      // Platform name // 平台
	Arch          string    `json:"arch"`          // Architecture // 架构
	KernelVersion string    `json:"kernelVersion"` // Kernel version // 内核版本
	Uptime        uint64    `json:"uptime"`        // System uptime // 系统运行时间
	CurrentTime   time.Time `json:"currentTime"`   // Current system time // 当前系统时间
	TimeZone      string    `json:"timezone"`      // Time zone name // 时区名称
}

// ProcessInfo current process information
type ProcessInfo struct {
	PID           int32   `json:"pid"`           // Process ID
	PPID          int32   `json:"ppid"`          // Parent Process ID
	Name          string  `json:"name"`          // Process Name
	CPUPercent    float64 `json:"cpuPercent"`    // CPU Usage percentage
	MemoryPercent float32 `json:"memoryPercent"` // Memory Usage percentage
}

// RuntimeInfo Go runtime information
// RuntimeInfo Go 运行时信息
type RuntimeInfo struct {
	NumGoroutine int    `json:"numGoroutine"` // Goroutine 数量
	MemAlloc     uint64 `json:"memAlloc"`     // 已分配内存（字节）
	MemTotal     uint64 `json:"memTotal"`     // 累计分配内存（字节）
	MemSys       uint64 `json:"memSys"`       // 从系统获取的内存（字节）
	HeapInuse    uint64 `json:"heapInuse"`    // 正在使用的 Span 占用的内存
	HeapReleased uint64 `json:"heapReleased"` // 释放回操作系统的内存（字节）
	NextGC       uint64 `json:"nextGc"`       // 下次 GC 的目标堆大小
	NumGC        uint32 `json:"numGc"`        // GC 次数
}

// GetSystemInfo 获取系统与运行时信息
// 认证由路由层的 Token 中间件保证
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	// Go Runtime
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// CPU
	cpuInfoList, _ := cpu.Info()
	cpuModel := ""
	if len(cpuInfoList) > 0 {
		cpuModel = cpuInfoList[0].ModelName
	}
	physCores, _ := cpu.Counts(false)
	logicCores, _ := cpu.Counts(true)
	cpuPercents, _ := cpu.Percent(time.Second, true)
	loadStat, _ := load.Avg()

	// Memory
	vMem, _ := mem.VirtualMemory()
	swapMem, _ := mem.SwapMemory()

	// Host
	hInfo, _ := host.Info()

	// Process
	p, _ := process.NewProcess(int32(os.Getpid()))
	pName, _ := p.Name()
	pPPid, _ := p.Ppid()
	pCPU, _ := p.CPUPercent()
	pMem, _ := p.MemoryPercent()

	data := SystemInfo{
		StartTime: h.App.StartTime,
		Uptime:    time.Since(h.App.StartTime).Seconds(),
		RuntimeStatus: RuntimeInfo{
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     m.Alloc,
			MemTotal:     m.TotalAlloc,
			MemSys:       m.Sys,
			HeapInuse:    m.HeapInuse,
			HeapReleased: m.HeapReleased,
			NextGC:       m.NextGC,
			NumGC:        m.NumGC,
		},
		CPU: CPUInfo{
			ModelName:     cpuModel,
			PhysicalCores: physCores,
			LogicalCores:  logicCores,
			Percent:       cpuPercents,
			LoadAvg: &LoadInfo{
				Load1:  loadStat.Load1,
				Load5:  loadStat.Load5,
				Load15: loadStat.Load15,
			},
		},
		Memory: MemoryInfo{
			Total:           vMem.Total,
			Available:       vMem.Available,
			Used:            vMem.Used,
			UsedPercent:     vMem.UsedPercent,
			SwapTotal:       swapMem.Total,
			SwapUsed:        swapMem.Used,
			SwapUsedPercent: swapMem.UsedPercent,
		},
		Host: HostInfo{
			Hostname:      hInfo.Hostname,
			OS:            hInfo.OS,
			OSPretty:      util.GetOSPrettyName(),
			Platform:      hInfo.Platform,
			Arch:          hInfo.KernelArch,
			KernelVersion: hInfo.KernelVersion,
			Uptime:        hInfo.Uptime,
			CurrentTime:   time.Now(),
			TimeZone:      time.Now().Location().String(),
		},
		Process: ProcessInfo{
			PID:           int32(os.Getpid()),
			PPID:          pPPid,
			Name:          pName,
			CPUPercent:    pCPU,
			MemoryPercent: pMem,
		},
	}

	response.ToResponse(code.Success.WithData(data))
}
