package backend

// TOSFixture is served outside production when the backend is unreachable so
// the portal stays demoable without a running backend.
var TOSFixture = []byte(`{
  "documents": [
    {
      "id": "tos-general",
      "title": "Terms of Service",
      "version": "2025-06-01",
      "url": "/documents/tos-general.pdf"
    },
    {
      "id": "tos-safe",
      "title": "SAFE Agreement Terms",
      "version": "2025-06-01",
      "url": "/documents/tos-safe.pdf"
    }
  ]
}`)
