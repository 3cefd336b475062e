package models

// SiteData is the aggregate store snapshot: section key to decoded JSON value.
type SiteData = map[string]interface{}

// Payment is one bank-transfer record. Timestamps are RFC3339 strings so
// that lexicographic comparison matches chronological order.
type Payment struct {
	ID            int    `json:"id"`
	RecipientName string `json:"recipient_name"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QRCodeURL     string `json:"qr_code_url"`
	IsActive      bool   `json:"is_active"`
	SortOrder     int    `json:"sort_order"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// PaymentView is the projected payment section shape.
type PaymentView struct {
	GlobalMessage string    `json:"global_message"`
	Payments      []Payment `json:"payments"`
}

type BackupRecord struct {
	ID        int    `json:"-"`
	Filename  string `json:"filename"`
	FilePath  string `json:"-"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created"`
}

type BackupStats struct {
	TotalBackups int            `json:"total_backups"`
	TotalSize    int64          `json:"total_size"`
	Recent       []BackupRecord `json:"recent_backups"`
	MaxBackups   int            `json:"max_backups"`
}

type UploadRecord struct {
	ID           int    `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FilePath     string `json:"file_path"`
	FileType     string `json:"file_type"`
	FileSize     int64  `json:"file_size"`
	UploadType   string `json:"upload_type"`
	CreatedAt    string `json:"created_at"`
}

type Blessing struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	From       string `json:"from"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	IsApproved bool   `json:"is_approved"`
}

type BlessingStats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
	Enabled  bool   `json:"enabled"`
}
