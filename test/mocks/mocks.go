package mocks

//go:generate go run github.com/golang/mock/mockgen -destination ./runtime/snapshot/snapshot.go github.com/lyft/goruntime/snapshot IFace
//go:generate go run github.com/golang/mock/mockgen -destination ./runtime/loader/loader.go github.com/lyft/goruntime/loader IFace
//go:generate go run github.com/golang/mock/mockgen -destination ./config/config.go github.com/entropyd/entropyd/src/config JitterPolicyConfig,PolicyConfigLoader
//go:generate go run github.com/golang/mock/mockgen -destination ./provider/provider.go github.com/entropyd/entropyd/src/provider PolicyConfigProvider,ConfigUpdateEvent
