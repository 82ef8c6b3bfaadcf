package report

import "github.com/aerovista-us/echovalentine/pkg/models"

const fixtureTime = "2024-01-02T03:04:05Z"

func fixtureRecords() []models.Record {
	index := &models.InventoryRecord{
		FileName:       "index.html",
		FullPath:       "/scan/app/index.html",
		SizeBytes:      12,
		LastModified:   fixtureTime,
		LastAccessed:   fixtureTime,
		Created:        fixtureTime,
		Extension:      ".html",
		Role:           models.RoleUICore,
		MimeType:       "text/html; charset=utf-8",
		Host:           "host1",
		Username:       "alice",
		OS:             "Linux",
		OSVersion:      "6.1",
		ScanID:         "00000000-0000-0000-0000-000000000001",
		ScanTime:       fixtureTime,
		ParentFolder:   "app",
		RootFolder:     "scan",
		Owner:          models.OwnerUnknown,
		FileHash:       "aaa",
		IsAppContainer: true,
		Container: &models.ContainerRecord{
			IsAppContainer: true,
			AppName:        "demo",
			Description:    "Demo app, v1",
			Dependencies:   []string{"vite", "electron"},
			HasElectron:    true,
			Scripts:        []string{"dev", "build"},
			Main:           "main.js",
			Version:        "1.0.0",
			SemVer:         "1.0.0",
		},
	}

	copied := &models.InventoryRecord{
		FileName:     "copy.html",
		FullPath:     "/scan/copy.html",
		SizeBytes:    12,
		LastModified: fixtureTime,
		LastAccessed: fixtureTime,
		Created:      fixtureTime,
		Extension:    ".html",
		Role:         models.RoleUICore,
		MimeType:     "text/html; charset=utf-8",
		Host:         "host1",
		Username:     "alice",
		OS:           "Linux",
		OSVersion:    "6.1",
		ScanID:       "00000000-0000-0000-0000-000000000001",
		ScanTime:     fixtureTime,
		ParentFolder: "scan",
		RootFolder:   "scan",
		Owner:        models.OwnerUnknown,
		FileHash:     "aaa",
		IsDuplicate:  true,
		DuplicateOf:  "/scan/app/index.html",
	}

	return []models.Record{
		models.NewInventory(index),
		models.NewInventory(copied),
		models.NewFailure(&models.ErrorRecord{
			FileName: "gone.txt",
			FullPath: "/scan/gone.txt",
			Error:    "stat /scan/gone.txt: no such file or directory",
		}),
	}
}
