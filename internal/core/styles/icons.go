package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconFile     = "\U000F0219" // 󰈙
	IconLanguage = "\U000F05CA" // 󰗊
	IconKey      = "\U000F0306" // 󰌆
	IconBusy     = "…"
	IconCheck    = "✓"
	IconCross    = "✗"
)

var (
	IconNotifyInfo    = "\U000F02FC" // 󰋼
	IconNotifyWarning = "\U000F0026" // 󰀦
	IconNotifyError   = "\U000F0159" // 󰅙
)
