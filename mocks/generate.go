package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-signal-engine/internal/provider AccountProvider,BarProvider,Broker,ChainProvider,OptionsFinder,PositionProvider,Predictor,RegimeProvider,SectorProvider,SentimentProvider,SignalRecorder,TechnicalProvider
//go:generate mockgen -destination=./mock_notifier.go -package=mocks github.com/rxtech-lab/argo-signal-engine/internal/alert Notifier
