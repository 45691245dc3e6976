package pb

//go:generate protoc --go_out=plugins=grpc:. nodesvc.proto
