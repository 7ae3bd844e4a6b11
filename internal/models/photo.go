package models

import "time"

// PhotoUpload — информация для клиента о presigned PUT загрузке фото растения.
//   - UploadURL: конечная URL для PUT-запроса;
//   - Key: ключ будущего объекта в бакете;
//   - Expires: время жизни подписи;
//   - RequiredHeaders: заголовки, которые клиент ОБЯЗАН передать при PUT.
type PhotoUpload struct {
	UploadURL       string
	Key             string
	Expires         time.Duration
	RequiredHeaders map[string]string
}
