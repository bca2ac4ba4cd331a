package i18n

// catalog holds the user-facing strings per language.
var catalog = map[string]map[string]string{
	"en": {
		"app_name": "TongbarnTube",
		"tagline":  "Distraction-free YouTube watching",

		"paste_url":        "Paste YouTube URL...",
		"watch":            "Watch",
		"recently_watched": "Recently Watched",
		"clear_history":    "Clear History",

		"now_playing":  "Now Playing",
		"add_to_queue": "Add to Queue",
		"queue":        "Queue",
		"play_queue":   "Play Queue",
		"queue_empty":  "Queue is empty",
		"clear_queue":  "Clear All",
		"playlist":     "Playlist",

		"play":        "Play",
		"direct_play": "Play Now",
		"remove":      "Remove",
		"clear":       "Clear",
		"home":        "Home",

		"invalid_url":      "Invalid URL",
		"invalid_url_desc": "Please enter a valid YouTube URL",
		"added_to_queue":   "Added to queue",
		"video_added":      "Video added to your play queue",
	},
	"th": {
		"app_name": "TongbarnTube",
		"tagline":  "ดู YouTube แบบไม่มีสิ่งรบกวน",

		"paste_url":        "วาง URL YouTube...",
		"watch":            "ดู",
		"recently_watched": "ดูล่าสุด",
		"clear_history":    "ล้างประวัติ",

		"now_playing":  "กำลังเล่น",
		"add_to_queue": "เพิ่มในคิว",
		"queue":        "คิว",
		"play_queue":   "คิวเล่น",
		"queue_empty":  "คิวว่างเปล่า",
		"clear_queue":  "ล้างทั้งหมด",
		"playlist":     "เพลย์ลิสต์",

		"play":        "เล่น",
		"direct_play": "เล่นทันที",
		"remove":      "ลบ",
		"clear":       "ล้าง",
		"home":        "หน้าแรก",

		"invalid_url":      "URL ไม่ถูกต้อง",
		"invalid_url_desc": "กรุณาใส่ URL YouTube ที่ถูกต้อง",
		"added_to_queue":   "เพิ่มในคิวแล้ว",
		"video_added":      "เพิ่มวิดีโอในคิวเรียบร้อย",
	},
}
