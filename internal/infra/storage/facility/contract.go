package facility

import "github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"

// SheetReader интерфейс чтения диапазонов документа
type SheetReader = sheet.Reader
