package database

// LogCommand records one dispatched command. Callers treat failures as
// non-fatal; usage logging must never break dispatch.
func (d *DBInstance) LogCommand(entry *CommandLog) error {
	return d.db.Create(entry).Error
}

// RecentCommandLogs returns the newest entries, most recent first.
func (d *DBInstance) RecentCommandLogs(limit int) ([]CommandLog, error) {
	var logs []CommandLog
	err := d.db.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// CountCommandLogs reports how many commands a user has dispatched.
func (d *DBInstance) CountCommandLogs(userID string) (int64, error) {
	var count int64
	err := d.db.Model(&CommandLog{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
