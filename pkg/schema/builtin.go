package schema

func f(v float64) *float64 { return &v }

func opts(values ...any) []any { return values }

var builtinSchemas = map[string]Schema{
	// ── Core computation layers ──

	"FC_LAYER": {
		{"inputDim", Field{Type: Number, Label: "Input Dimension", Default: 512.0, Min: f(1), Hint: "Number of input features"}},
		{"outputDim", Field{Type: Number, Label: "Output Dimension", Default: 128.0, Min: f(1), Hint: "Number of output neurons"}},
		{"activation", Field{Type: Select, Label: "Activation", Default: "ReLU",
			Options: opts("None", "ReLU", "Sigmoid", "Tanh", "GELU", "SiLU"), Hint: "Post-activation function"}},
		{"useBias", Field{Type: Boolean, Label: "Use Bias", Default: true, Hint: "Include bias term (b)"}},
	},
	"MLP_LAYERS": {
		{"layerWidths", Field{Type: Text, Label: "Layer Widths", Default: "512:256:128:64",
			Hint: "Colon-separated layer sizes (e.g., 512:256:128)", Placeholder: "512:256:128:64"}},
		{"activation", Field{Type: Select, Label: "Hidden Activation", Default: "GELU",
			Options: opts("ReLU", "GELU", "Tanh", "SiLU", "Leaky ReLU"), Hint: "Activation between layers"}},
		{"dropout", Field{Type: Range, Label: "Dropout Rate", Default: 0.1, Min: f(0), Max: f(0.9), Step: f(0.05),
			Hint: "Dropout probability (0 = disabled)"}},
		{"showConnections", Field{Type: Boolean, Label: "Show Inter-Layer Connections", Default: true,
			Hint: "Visualize neuron connections"}},
	},
	"CONV_LAYER": {
		{"inChannels", Field{Type: Number, Label: "Input Channels", Default: 3.0, Min: f(1),
			Hint: "Number of input feature maps (e.g., 3 for RGB)"}},
		{"outChannels", Field{Type: Number, Label: "Output Channels", Default: 64.0, Min: f(1), Hint: "Number of learned filters"}},
		{"kernelSize", Field{Type: Select, Label: "Kernel Size (k×k)", Default: 3.0,
			Options: opts(1.0, 3.0, 5.0, 7.0, 11.0), Hint: "Receptive field size"}},
		{"stride", Field{Type: Number, Label: "Stride", Default: 1.0, Min: f(1), Max: f(8), Hint: "Step size for kernel sliding"}},
		{"padding", Field{Type: Select, Label: "Padding", Default: "same",
			Options: opts("valid", "same", "none"), Hint: `"same" preserves spatial dims`}},
		{"dilation", Field{Type: Number, Label: "Dilation", Default: 1.0, Min: f(1), Max: f(8), Hint: "Spacing between kernel elements"}},
		{"groups", Field{Type: Number, Label: "Groups", Default: 1.0, Min: f(1), Hint: "Grouped convolution (1 = standard)"}},
	},
	"POOLING": {
		{"poolType", Field{Type: Select, Label: "Pool Type", Default: "max", Options: opts("max", "avg", "global"),
			Hint: "Aggregation function"}},
		{"poolSize", Field{Type: Select, Label: "Pool Size (k×k)", Default: 2.0, Options: opts(2.0, 3.0, 4.0, 5.0),
			Hint: "Window size for pooling"}},
		{"stride", Field{Type: Number, Label: "Stride", Default: 2.0, Min: f(1), Max: f(8), Hint: "Usually equals pool size"}},
		{"visualization", Field{Type: Select, Label: "Visualization Style", Default: "funnel", Options: opts("funnel", "grid"),
			Hint: "Funnel (default) or grid→single"}},
	},
	"FLATTEN": {
		{"startDim", Field{Type: Number, Label: "Start Dimension", Default: 1.0, Min: f(0),
			Hint: "Dimension to start flattening from (0 = include batch)"}},
		{"endDim", Field{Type: Number, Label: "End Dimension", Default: -1.0, Min: f(-1), Hint: "-1 means last dimension"}},
	},

	// ── Activations ──

	"ACTIVATION": {
		{"activationType", Field{Type: Select, Label: "Activation Type", Default: "relu",
			Options: opts("relu", "sigmoid", "tanh", "softmax", "leaky_relu", "gelu", "silu"), Hint: "Non-linear function"}},
		{"alpha", Field{Type: Number, Label: "Alpha (for Leaky ReLU)", Default: 0.01, Min: f(0), Max: f(1), Step: f(0.01),
			Hint: "Negative slope coefficient"}},
	},
	"SIGMOID_TANH": {
		{"activationType", Field{Type: Select, Label: "Function", Default: "sigmoid", Options: opts("sigmoid", "tanh")}},
	},
	"SOFTMAX_RELU": {
		{"activationType", Field{Type: Select, Label: "Function", Default: "softmax", Options: opts("softmax", "relu", "leaky_relu")}},
	},
	"GELU": {
		{"activationType", Field{Type: Select, Label: "GELU Variant", Default: "gelu", Options: opts("gelu", "silu"),
			Hint: "GELU or SiLU (Swish)"}},
	},

	// ── Normalization and regularization ──

	"BATCH_NORM": {
		{"numFeatures", Field{Type: Number, Label: "Number of Features", Default: 64.0, Min: f(1),
			Hint: "Should match previous layer output"}},
		{"momentum", Field{Type: Range, Label: "Momentum", Default: 0.1, Min: f(0), Max: f(1), Step: f(0.01),
			Hint: "Running mean/var update rate"}},
		{"epsilon", Field{Type: Number, Label: "Epsilon (ε)", Default: 1e-5, Min: f(1e-8), Max: f(1e-3),
			Hint: "Numerical stability constant"}},
		{"affine", Field{Type: Boolean, Label: "Affine Transform", Default: true, Hint: "Learn γ and β parameters"}},
	},
	"LAYER_NORM": {
		{"normalizedShape", Field{Type: Text, Label: "Normalized Shape", Default: "[512]",
			Hint: "Feature dimensions to normalize (e.g., [512] or [64, 32])", Placeholder: "[512]"}},
		{"epsilon", Field{Type: Number, Label: "Epsilon (ε)", Default: 1e-5, Min: f(1e-8), Max: f(1e-3)}},
		{"elementwiseAffine", Field{Type: Boolean, Label: "Elementwise Affine", Default: true}},
	},
	"DROPOUT": {
		{"dropoutRate", Field{Type: Range, Label: "Dropout Rate (p)", Default: 0.5, Min: f(0), Max: f(0.95), Step: f(0.05),
			Hint: "Probability of dropping each element"}},
		{"visualizeDropped", Field{Type: Boolean, Label: "Visualize Dropped Neurons", Default: true,
			Hint: "Show dashed circles for dropped neurons"}},
		{"seed", Field{Type: Text, Label: "Random Seed", Default: "",
			Hint: "Optional seed for deterministic pattern (uses node ID if empty)", Placeholder: "Leave empty for node ID"}},
	},

	// ── Data and I/O ──

	"DATA": {
		{"ioType", Field{Type: Select, Label: "I/O Type", Default: "input", Options: opts("input", "output"),
			Hint: "Input (green) or Output (red)"}},
		{"dataSource", Field{Type: Select, Label: "Data Source", Default: "CSV",
			Options: opts("CSV", "Image", "Audio", "Text", "Video", "Custom"), Hint: "Type of data"}},
		{"shape", Field{Type: Text, Label: "Tensor Shape", Default: "(N, 784)",
			Hint: "Dimensions (e.g., (N, 784) or (B, 3, 224, 224))", Placeholder: "(N, 784)"}},
		{"direction", Field{Type: Select, Label: "Flow Direction", Default: "right", Options: opts("left", "right"),
			Hint: "Arrow direction in parallelogram"}},
	},
	"INPUT_DATA": {
		{"dataSource", Field{Type: Select, Label: "Data Source", Default: "Image",
			Options: opts("CSV", "Image", "Audio", "Text", "Video", "Custom")}},
		{"shape", Field{Type: Text, Label: "Input Shape", Default: "(B, 3, 224, 224)", Placeholder: "(B, 3, 224, 224)"}},
	},
	"OUTPUT_DATA": {
		{"shape", Field{Type: Text, Label: "Output Shape", Default: "(B, 1000)", Placeholder: "(B, 1000)"}},
		{"outputType", Field{Type: Select, Label: "Output Type", Default: "Logits",
			Options: opts("Logits", "Probabilities", "Classes", "Features")}},
	},
	"TENSOR": {
		{"shape", Field{Type: Text, Label: "Tensor Shape", Default: "[B, C, H, W]",
			Hint: "Symbolic shape (e.g., [B, C, H, W] or [N, D])", Placeholder: "[B, C, H, W]"}},
		{"dtype", Field{Type: Select, Label: "Data Type", Default: "float32",
			Options: opts("float16", "float32", "float64", "int32", "int64", "bool")}},
		{"depth", Field{Type: Range, Label: "Visual Depth (Layers)", Default: 5.0, Min: f(3), Max: f(8), Step: f(1),
			Hint: "Number of stacked layers in visualization"}},
	},

	// ── Objective and optimization ──

	"LOSS": {
		{"lossType", Field{Type: Select, Label: "Loss Function", Default: "CrossEntropy",
			Options: opts("CrossEntropy", "MSE", "BCE", "MAE", "Huber", "KLDiv", "CTC", "Custom"), Hint: "Training objective"}},
		{"reduction", Field{Type: Select, Label: "Reduction", Default: "mean", Options: opts("none", "mean", "sum"),
			Hint: "How to aggregate batch losses"}},
		{"labelSmoothing", Field{Type: Range, Label: "Label Smoothing", Default: 0.0, Min: f(0), Max: f(0.3), Step: f(0.01),
			Hint: "Regularization via soft labels"}},
	},
	"OPTIMIZER": {
		{"algorithm", Field{Type: Select, Label: "Algorithm", Default: "Adam",
			Options: opts("Adam", "AdamW", "SGD", "RMSProp", "Adagrad", "Adadelta"), Hint: "Optimization algorithm"}},
		{"learningRate", Field{Type: Number, Label: "Learning Rate (η)", Default: 0.001, Min: f(1e-6), Max: f(1),
			Hint: "Step size for gradient descent"}},
		{"momentum", Field{Type: Range, Label: "Momentum (β)", Default: 0.9, Min: f(0), Max: f(0.99), Step: f(0.01),
			Hint: "For SGD with momentum"}},
		{"weightDecay", Field{Type: Number, Label: "Weight Decay (L2)", Default: 0.0001, Min: f(0), Max: f(0.1),
			Hint: "L2 regularization strength"}},
		{"beta1", Field{Type: Range, Label: "Beta1 (Adam)", Default: 0.9, Min: f(0), Max: f(0.999), Step: f(0.001),
			Hint: "First moment decay"}},
		{"beta2", Field{Type: Range, Label: "Beta2 (Adam)", Default: 0.999, Min: f(0), Max: f(0.9999), Step: f(0.0001),
			Hint: "Second moment decay"}},
	},

	// ── Advanced architectures ──

	"ATTENTION": {
		{"numHeads", Field{Type: Number, Label: "Number of Heads", Default: 8.0, Min: f(1), Max: f(32),
			Hint: "Multi-head attention heads"}},
		{"embedDim", Field{Type: Number, Label: "Embedding Dimension", Default: 512.0, Min: f(1), Hint: "Model dimension (d_model)"}},
		{"dropout", Field{Type: Range, Label: "Attention Dropout", Default: 0.1, Min: f(0), Max: f(0.5), Step: f(0.05)}},
	},
	"EMBEDDING": {
		{"vocabSize", Field{Type: Number, Label: "Vocabulary Size", Default: 10000.0, Min: f(1),
			Hint: "Number of unique tokens in vocabulary"}},
		{"embeddingDim", Field{Type: Number, Label: "Embedding Dimension", Default: 128.0, Min: f(1),
			Hint: "Dimension of dense embedding vectors"}},
		{"paddingIdx", Field{Type: Number, Label: "Padding Index", Default: 0.0, Min: f(-1),
			Hint: "Index for padding token (-1 for none)"}},
		{"maxNorm", Field{Type: Number, Label: "Max Norm", Default: 0.0, Min: f(0),
			Hint: "Max L2 norm for embeddings (0 = disabled)"}},
	},
	"RNN_LSTM": {
		{"cellType", Field{Type: Select, Label: "Cell Type", Default: "LSTM", Options: opts("RNN", "LSTM", "GRU")}},
		{"hiddenSize", Field{Type: Number, Label: "Hidden Size", Default: 256.0, Min: f(1), Hint: "Number of hidden units"}},
		{"numLayers", Field{Type: Number, Label: "Number of Layers", Default: 2.0, Min: f(1), Max: f(8)}},
		{"bidirectional", Field{Type: Boolean, Label: "Bidirectional", Default: false}},
		{"dropout", Field{Type: Range, Label: "Dropout", Default: 0.2, Min: f(0), Max: f(0.5), Step: f(0.05)}},
	},

	// ── Basic elements ──

	"NEURON": {
		{"activationState", Field{Type: Range, Label: "Activation State", Default: 0.5, Min: f(0), Max: f(1), Step: f(0.01),
			Hint: "Activation level (0-1)"}},
		{"showPulse", Field{Type: Boolean, Label: "Show Pulse Animation", Default: false,
			Hint: "Animated pulse for active neurons"}},
	},
	"GROUP": {
		{"collapsible", Field{Type: Boolean, Label: "Collapsible", Default: true}},
		{"collapsed", Field{Type: Boolean, Label: "Initially Collapsed", Default: false}},
		{"subtitle", Field{Type: Text, Label: "Subtitle", Default: "", Placeholder: `e.g., "ResNet Block"`}},
	},
	DefaultKey: {
		{"notes", Field{Type: Text, Label: "Notes", Default: "",
			Hint: "Internal comments or documentation", Placeholder: "Add notes here..."}},
	},
}
