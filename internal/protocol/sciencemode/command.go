package sciencemode

import "fmt"

// Command ScienceMode2 命令码（闭集枚举，见厂商协议文档 3.x 命令表）
type Command byte

const (
	CmdInit                    Command = 0x01
	CmdInitAck                 Command = 0x02
	CmdUnknownCommand          Command = 0x03
	CmdWatchdog                Command = 0x04
	CmdGetStimulationMode      Command = 0x0A
	CmdGetStimulationModeAck   Command = 0x0B
	CmdInitChannelListMode     Command = 0x1E
	CmdInitChannelListModeAck  Command = 0x1F
	CmdStartChannelListMode    Command = 0x20
	CmdStartChannelListModeAck Command = 0x21
	CmdStopChannelListMode     Command = 0x22
	CmdStopChannelListModeAck  Command = 0x23
	CmdSinglePulse             Command = 0x24
	CmdSinglePulseAck          Command = 0x25
	CmdStimulationError        Command = 0x26
	CmdInitPhaseTraining       Command = 0x32
	CmdStartPhase              Command = 0x33
	CmdPausePhase              Command = 0x34
	CmdStopPhaseTraining       Command = 0x35
	CmdPhaseResult             Command = 0x36
	CmdActualValues            Command = 0x3C
	CmdSetRotationDirection    Command = 0x46
	CmdSetSpeed                Command = 0x47
	CmdGoThroughStartAngle     Command = 0x48
	CmdStartBasicTraining      Command = 0x49
	CmdPauseBasicTraining      Command = 0x4A
	CmdContinueBasicTraining   Command = 0x4B
	CmdStopBasicTraining       Command = 0x4C
	CmdMotomedCommandDone      Command = 0x4D
	// CmdMotomedError 设备保留的错误通道，接收侧直接忽略该类帧
	CmdMotomedError Command = 0x5A
)

var commandNames = map[Command]string{
	CmdInit:                    "Init",
	CmdInitAck:                 "InitAck",
	CmdUnknownCommand:          "UnknownCommand",
	CmdWatchdog:                "Watchdog",
	CmdGetStimulationMode:      "GetStimulationMode",
	CmdGetStimulationModeAck:   "GetStimulationModeAck",
	CmdInitChannelListMode:     "InitChannelListMode",
	CmdInitChannelListModeAck:  "InitChannelListModeAck",
	CmdStartChannelListMode:    "StartChannelListMode",
	CmdStartChannelListModeAck: "StartChannelListModeAck",
	CmdStopChannelListMode:     "StopChannelListMode",
	CmdStopChannelListModeAck:  "StopChannelListModeAck",
	CmdSinglePulse:             "SinglePulse",
	CmdSinglePulseAck:          "SinglePulseAck",
	CmdStimulationError:        "StimulationError",
	CmdInitPhaseTraining:       "InitPhaseTraining",
	CmdStartPhase:              "StartPhase",
	CmdPausePhase:              "PausePhase",
	CmdStopPhaseTraining:       "StopPhaseTraining",
	CmdPhaseResult:             "PhaseResult",
	CmdActualValues:            "ActualValues",
	CmdSetRotationDirection:    "SetRotationDirection",
	CmdSetSpeed:                "SetSpeed",
	CmdGoThroughStartAngle:     "GoThroughStartAngle",
	CmdStartBasicTraining:      "StartBasicTraining",
	CmdPauseBasicTraining:      "PauseBasicTraining",
	CmdContinueBasicTraining:   "ContinueBasicTraining",
	CmdStopBasicTraining:       "StopBasicTraining",
	CmdMotomedCommandDone:      "MotomedCommandDone",
	CmdMotomedError:            "MotomedError",
}

// CommandFromByte 将原始字节映射为命令码；枚举外的值返回 ErrUnknownCommand，
// 是否忽略由调用方决定
func CommandFromByte(b byte) (Command, error) {
	c := Command(b)
	if _, ok := commandNames[c]; !ok {
		return 0, fmt.Errorf("%w: 0x%02X", ErrUnknownCommand, b)
	}
	return c, nil
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(0x%02X)", byte(c))
}
